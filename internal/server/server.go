package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Tomlord1122/weather-todo/internal/service"
)

// HealthChecker reports the health of a backing dependency.
type HealthChecker interface {
	Health() map[string]string
}

// Dependencies bundles the services the HTTP layer dispatches to.
type Dependencies struct {
	Auth         service.AuthService
	Users        service.UserService
	UserAdmin    service.UserAdminService
	Todos        service.TodoService
	Managers     service.ManagerService
	Comments     service.CommentService
	CommentAdmin service.CommentAdminService
	Usage        *service.UsageRecorder
	DB           HealthChecker
}

type Server struct {
	Dependencies
	logger *slog.Logger
}

func New(deps Dependencies, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Dependencies: deps, logger: logger}
}

// NewHTTPServer wraps the router in an *http.Server listening on port.
func NewHTTPServer(port int, deps Dependencies, logger *slog.Logger) *http.Server {
	appServer := New(deps, logger)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(appServer.logger.Handler(), slog.LevelError),
	}
}
