package server

import (
	"net/http"

	"github.com/Tomlord1122/weather-todo/internal/service"
)

func (s *Server) saveManagerHandler(w http.ResponseWriter, r *http.Request) {
	authUser, _ := authUserFrom(r)
	todoID, ok := pathID(w, r, "todoId")
	if !ok {
		return
	}

	var req service.ManagerSaveRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	resp, err := s.Managers.SaveManager(r.Context(), authUser, todoID, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) getManagersHandler(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r, "todoId")
	if !ok {
		return
	}

	resp, err := s.Managers.GetManagers(r.Context(), todoID)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteManagerHandler(w http.ResponseWriter, r *http.Request) {
	authUser, _ := authUserFrom(r)
	todoID, ok := pathID(w, r, "todoId")
	if !ok {
		return
	}
	managerID, ok := pathID(w, r, "managerId")
	if !ok {
		return
	}

	if err := s.Managers.DeleteManager(r.Context(), authUser, todoID, managerID); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
