package service

import (
	"context"
	"log/slog"

	"github.com/Tomlord1122/weather-todo/internal/auth"
	"github.com/Tomlord1122/weather-todo/internal/domain"
	"github.com/Tomlord1122/weather-todo/internal/repository"
)

// UserService serves the signed-in user's own account.
type UserService interface {
	GetUser(ctx context.Context, userID uint) (*UserResponse, error)
	// ChangePassword checks, in order: the user exists, the new password meets
	// the policy, it differs from the current one, and the old password matches.
	ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error
}

type userService struct {
	users     repository.UserRepository
	passwords PasswordEncoder
	logger    *slog.Logger
}

func NewUserService(users repository.UserRepository, passwords PasswordEncoder, logger *slog.Logger) UserService {
	return &userService{users: users, passwords: passwords, logger: defaultLogger(logger)}
}

func (s *userService) GetUser(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	resp := toUserResponse(*user)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) (err error) {
	defer func() { logResult(ctx, s.logger, "UserService", "ChangePassword", err, "user_id", userID) }()

	// 1. Load the user
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return lookupError(err, "User not found")
	}

	// 2. Password policy
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return invalidRequest("new password must be at least 8 characters and contain a digit and an uppercase letter")
	}

	// 3. Reject reusing the current password
	if s.passwords.Matches(req.NewPassword, user.Password) {
		return invalidRequest("new password must differ from the current password")
	}

	// 4. Verify the old password
	if !s.passwords.Matches(req.OldPassword, user.Password) {
		return invalidRequest("current password does not match")
	}

	digest, err := s.passwords.Hash(req.NewPassword)
	if err != nil {
		return invalidRequest("password cannot be hashed")
	}
	user.Password = digest
	if err := s.users.Update(ctx, user); err != nil {
		return unavailable("database unavailable", err)
	}
	return nil
}

// UserAdminService holds the admin-only user operations.
type UserAdminService interface {
	ChangeUserRole(ctx context.Context, actor domain.AuthUser, userID uint, req ChangeUserRoleRequest) error
}

type userAdminService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserAdminService(users repository.UserRepository, logger *slog.Logger) UserAdminService {
	return &userAdminService{users: users, logger: defaultLogger(logger)}
}

func (s *userAdminService) ChangeUserRole(ctx context.Context, actor domain.AuthUser, userID uint, req ChangeUserRoleRequest) (err error) {
	defer func() {
		logResult(ctx, s.logger, "UserAdminService", "ChangeUserRole", err, "actor_id", actor.ID, "user_id", userID)
	}()

	if err := RequireAdmin(actor); err != nil {
		return err
	}
	role, err := domain.ParseUserRole(req.Role)
	if err != nil {
		return invalidRequest(err.Error())
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return lookupError(err, "User not found")
	}
	user.UserRole = role
	if err := s.users.Update(ctx, user); err != nil {
		return unavailable("database unavailable", err)
	}
	return nil
}
