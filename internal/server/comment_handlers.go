package server

import (
	"context"
	"net/http"

	"github.com/Tomlord1122/weather-todo/internal/service"
)

func (s *Server) saveCommentHandler(w http.ResponseWriter, r *http.Request) {
	authUser, _ := authUserFrom(r)
	todoID, ok := pathID(w, r, "todoId")
	if !ok {
		return
	}

	var req service.CommentSaveRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	resp, err := s.Comments.SaveComment(r.Context(), authUser, todoID, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) getCommentsHandler(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r, "todoId")
	if !ok {
		return
	}

	resp, err := s.Comments.GetComments(r.Context(), todoID)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := authUserFrom(r)
	commentID, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}

	call := service.AdminCall{Actor: actor, Path: r.URL.Path}
	err := s.Usage.Record(r.Context(), call, func(ctx context.Context) error {
		return s.CommentAdmin.DeleteComment(ctx, actor, commentID)
	})
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
