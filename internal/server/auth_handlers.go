package server

import (
	"net/http"

	"github.com/Tomlord1122/weather-todo/internal/service"
)

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	resp, err := s.Auth.Signup(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) signinHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	resp, err := s.Auth.Signin(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}
