package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tomlord1122/weather-todo/internal/auth"
	"github.com/Tomlord1122/weather-todo/internal/config"
	"github.com/Tomlord1122/weather-todo/internal/database"
	"github.com/Tomlord1122/weather-todo/internal/repository"
	"github.com/Tomlord1122/weather-todo/internal/server"
	"github.com/Tomlord1122/weather-todo/internal/service"
	"github.com/Tomlord1122/weather-todo/internal/weather"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, logger *slog.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has 5 seconds to finish in-flight requests.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			logger.Error("error closing database connection pool", "error", err)
		} else {
			logger.Info("database connection pool closed")
		}
	}

	logger.Info("server exiting")
	done <- true
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.IsLocal() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// 1. Database
	dbService, err := database.New(cfg.DB.DSN(), database.DefaultOptions(), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if cfg.DB.AutoMigrate {
		if err := dbService.Migrate(context.Background()); err != nil {
			logger.Error("failed to auto-migrate database", "error", err)
			os.Exit(1)
		}
	}
	gormDB := dbService.GetDB()

	// 2. Repositories
	userRepo := repository.NewGormUserRepository(gormDB)
	todoRepo := repository.NewGormTodoRepository(gormDB)
	managerRepo := repository.NewGormManagerRepository(gormDB)
	commentRepo := repository.NewGormCommentRepository(gormDB)
	useTimeRepo := repository.NewGormApiUseTimeRepository(gormDB)

	// 3. Collaborators
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	passwords := auth.NewPasswordHasher(bcrypt.DefaultCost)
	weatherClient := weather.NewClient(cfg.WeatherURL, cfg.WeatherTimeout)

	// 4. Services
	deps := server.Dependencies{
		Auth:         service.NewAuthService(userRepo, passwords, tokens, logger),
		Users:        service.NewUserService(userRepo, passwords, logger),
		UserAdmin:    service.NewUserAdminService(userRepo, logger),
		Todos:        service.NewTodoService(todoRepo, weatherClient, logger),
		Managers:     service.NewManagerService(managerRepo, todoRepo, userRepo, logger),
		Comments:     service.NewCommentService(commentRepo, todoRepo, logger),
		CommentAdmin: service.NewCommentAdminService(commentRepo, logger),
		Usage:        service.NewUsageRecorder(useTimeRepo, time.Now, logger),
		DB:           dbService,
	}

	// 5. HTTP server
	apiServer := server.NewHTTPServer(cfg.Port, deps, logger)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, logger, done)

	logger.Info("starting server", "addr", apiServer.Addr, "env", cfg.AppEnv)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("graceful shutdown complete")
}
