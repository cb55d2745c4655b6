package server

import (
	"context"
	"net/http"

	"github.com/Tomlord1122/weather-todo/internal/domain"
)

type contextKey struct{}

func contextWithAuthUser(ctx context.Context, user domain.AuthUser) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// authUserFrom returns the identity stored by authenticate. Handlers pass it
// explicitly to every service call that needs it.
func authUserFrom(r *http.Request) (domain.AuthUser, bool) {
	user, ok := r.Context().Value(contextKey{}).(domain.AuthUser)
	return user, ok
}

// authenticate resolves the Authorization bearer token. Requests without a
// valid token never reach a handler.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "JWT token is required")
			return
		}

		user, err := s.Auth.ResolveToken(r.Context(), token)
		if err != nil {
			s.respondWithServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithAuthUser(r.Context(), user)))
	})
}

// RequireRole rejects authenticated users lacking role with 403.
func RequireRole(role domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := authUserFrom(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "JWT token is required")
				return
			}
			if user.UserRole != role {
				respondWithError(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
