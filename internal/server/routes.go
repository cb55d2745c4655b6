package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Tomlord1122/weather-todo/internal/domain"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.signupHandler)
		r.Post("/signin", s.signinHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/users/{userId}", s.getUserHandler)
		r.Put("/users", s.changePasswordHandler)

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", s.saveTodoHandler)
			r.Get("/", s.getTodosHandler)
			r.Get("/{todoId}", s.getTodoHandler)

			r.Post("/{todoId}/managers", s.saveManagerHandler)
			r.Get("/{todoId}/managers", s.getManagersHandler)
			r.Delete("/{todoId}/managers/{managerId}", s.deleteManagerHandler)

			r.Post("/{todoId}/comments", s.saveCommentHandler)
			r.Get("/{todoId}/comments", s.getCommentsHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireRole(domain.RoleAdmin))
			r.Patch("/users/{userId}", s.changeUserRoleHandler)
			r.Delete("/comments/{commentId}", s.deleteCommentHandler)
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	healthStats := s.DB.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
