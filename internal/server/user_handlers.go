package server

import (
	"context"
	"net/http"

	"github.com/Tomlord1122/weather-todo/internal/service"
)

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	user, err := s.Users.GetUser(r.Context(), userID)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// changePasswordHandler always acts on the caller's own account.
func (s *Server) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	authUser, _ := authUserFrom(r)

	var req service.ChangePasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := s.Users.ChangePassword(r.Context(), authUser.ID, req); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) changeUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := authUserFrom(r)
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	var req service.ChangeUserRoleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	call := service.AdminCall{Actor: actor, Path: r.URL.Path}
	err := s.Usage.Record(r.Context(), call, func(ctx context.Context) error {
		return s.UserAdmin.ChangeUserRole(ctx, actor, userID, req)
	})
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
