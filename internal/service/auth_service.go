package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/Tomlord1122/weather-todo/internal/domain"
	"github.com/Tomlord1122/weather-todo/internal/repository"
)

// Signin failures never reveal whether the email exists.
const msgBadCredentials = "invalid email or password"

// AuthService covers signup, signin and bearer token resolution.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error)
	// ResolveToken verifies a bearer token and returns the identity it carries.
	ResolveToken(ctx context.Context, token string) (domain.AuthUser, error)
}

type authService struct {
	users     repository.UserRepository
	passwords PasswordEncoder
	tokens    TokenIssuer
	logger    *slog.Logger
}

func NewAuthService(users repository.UserRepository, passwords PasswordEncoder, tokens TokenIssuer, logger *slog.Logger) AuthService {
	return &authService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    defaultLogger(logger),
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (resp *SignupResponse, err error) {
	email := strings.TrimSpace(req.Email)
	defer func() { logResult(ctx, s.logger, "AuthService", "Signup", err, "email", email) }()

	if email == "" || !strings.Contains(email, "@") {
		return nil, invalidRequest("a valid email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, invalidRequest("password is required")
	}
	role, err := domain.ParseUserRole(req.UserRole)
	if err != nil {
		return nil, invalidRequest(err.Error())
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, unavailable("database unavailable", err)
	}
	if exists {
		return nil, conflict("email already registered")
	}

	digest, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, invalidRequest("password cannot be hashed")
	}

	user := &domain.User{Email: email, Password: digest, UserRole: role}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("email already registered")
		}
		return nil, unavailable("database unavailable", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.UserRole)
	if err != nil {
		return nil, &Error{Kind: ErrServiceUnavailable, Message: "token issuance failed", Cause: err}
	}
	return &SignupResponse{BearerToken: token, UserID: user.ID}, nil
}

func (s *authService) Signin(ctx context.Context, req SigninRequest) (resp *SigninResponse, err error) {
	email := strings.TrimSpace(req.Email)
	defer func() { logResult(ctx, s.logger, "AuthService", "Signin", err, "email", email) }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized(msgBadCredentials)
		}
		return nil, unavailable("database unavailable", err)
	}
	if !s.passwords.Matches(req.Password, user.Password) {
		return nil, unauthorized(msgBadCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.UserRole)
	if err != nil {
		return nil, &Error{Kind: ErrServiceUnavailable, Message: "token issuance failed", Cause: err}
	}
	return &SigninResponse{BearerToken: token}, nil
}

func (s *authService) ResolveToken(ctx context.Context, token string) (domain.AuthUser, error) {
	user, err := s.tokens.Verify(token)
	if err != nil {
		return domain.AuthUser{}, &Error{Kind: ErrUnauthorized, Message: "invalid or expired token", Cause: err}
	}
	return user, nil
}
