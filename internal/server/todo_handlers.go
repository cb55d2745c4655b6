package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Tomlord1122/weather-todo/internal/service"
)

const (
	defaultPage = 1
	defaultSize = 10
)

func (s *Server) saveTodoHandler(w http.ResponseWriter, r *http.Request) {
	authUser, _ := authUserFrom(r)

	var req service.TodoSaveRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	resp, err := s.Todos.SaveTodo(r.Context(), authUser, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) getTodosHandler(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page", defaultPage)
	if !ok {
		return
	}
	size, ok := queryInt(w, r, "size", defaultSize)
	if !ok {
		return
	}

	resp, err := s.Todos.GetTodos(r.Context(), page, size)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r, "todoId")
	if !ok {
		return
	}

	resp, err := s.Todos.GetTodo(r.Context(), todoID)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s parameter", name))
		return 0, false
	}
	return v, true
}
