package service

import (
	"context"

	"github.com/Tomlord1122/weather-todo/internal/domain"
)

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID uint, email string, role domain.UserRole) (string, error)
	Verify(token string) (domain.AuthUser, error)
}

// PasswordEncoder hashes passwords and checks plaintext against a digest.
type PasswordEncoder interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, digest string) bool
}

// WeatherClient returns a short description of today's weather.
type WeatherClient interface {
	TodayWeather(ctx context.Context) (string, error)
}

// RequireAdmin is the guard every admin-only operation calls first.
func RequireAdmin(actor domain.AuthUser) error {
	if !actor.IsAdmin() {
		return forbidden("admin role required")
	}
	return nil
}
