package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Tomlord1122/weather-todo/internal/domain"
	"github.com/Tomlord1122/weather-todo/internal/repository"
)

// ManagerService assigns co-managers to todos. Only a todo's owner may add or
// remove managers.
type ManagerService interface {
	SaveManager(ctx context.Context, authUser domain.AuthUser, todoID uint, req ManagerSaveRequest) (*ManagerSaveResponse, error)
	GetManagers(ctx context.Context, todoID uint) ([]ManagerResponse, error)
	DeleteManager(ctx context.Context, authUser domain.AuthUser, todoID, managerID uint) error
}

type managerService struct {
	managers repository.ManagerRepository
	todos    repository.TodoRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

func NewManagerService(managers repository.ManagerRepository, todos repository.TodoRepository, users repository.UserRepository, logger *slog.Logger) ManagerService {
	return &managerService{
		managers: managers,
		todos:    todos,
		users:    users,
		logger:   defaultLogger(logger),
	}
}

// SaveManager checks run in this order: todo exists, caller owns it, target
// is not the owner, target user exists, target is not already a manager.
//
// The "already a manager" check and the insert are not atomic. Two concurrent
// calls for the same pair can both pass the check; the unique index on
// (todo_id, user_id) then rejects the second insert, which is reported as
// the same InvalidRequest.
func (s *managerService) SaveManager(ctx context.Context, authUser domain.AuthUser, todoID uint, req ManagerSaveRequest) (resp *ManagerSaveResponse, err error) {
	defer func() {
		logResult(ctx, s.logger, "ManagerService", "SaveManager", err,
			"user_id", authUser.ID, "todo_id", todoID, "manager_user_id", req.ManagerUserID)
	}()

	todo, err := s.todos.FindByID(ctx, todoID)
	if err != nil {
		return nil, lookupError(err, "Todo not found")
	}
	if todo.UserID != authUser.ID {
		return nil, forbidden("only the todo owner can assign managers")
	}
	if req.ManagerUserID == todo.UserID {
		return nil, invalidRequest("the todo owner cannot be assigned as a manager")
	}

	managerUser, err := s.users.FindByID(ctx, req.ManagerUserID)
	if err != nil {
		return nil, lookupError(err, "Manager user not found")
	}

	exists, err := s.managers.ExistsByTodoIDAndUserID(ctx, todoID, managerUser.ID)
	if err != nil {
		return nil, unavailable("database unavailable", err)
	}
	if exists {
		return nil, invalidRequest("user is already a manager of this todo")
	}

	manager := &domain.Manager{TodoID: todoID, UserID: managerUser.ID}
	if err := s.managers.Create(ctx, manager); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalidRequest("user is already a manager of this todo")
		}
		return nil, unavailable("database unavailable", err)
	}

	return &ManagerSaveResponse{ID: manager.ID, User: toUserResponse(*managerUser)}, nil
}

func (s *managerService) GetManagers(ctx context.Context, todoID uint) ([]ManagerResponse, error) {
	exists, err := s.todos.ExistsByID(ctx, todoID)
	if err != nil {
		return nil, unavailable("database unavailable", err)
	}
	if !exists {
		return nil, notFound("Todo not found")
	}

	managers, err := s.managers.FindByTodoID(ctx, todoID)
	if err != nil {
		return nil, unavailable("database unavailable", err)
	}

	resp := make([]ManagerResponse, 0, len(managers))
	for _, m := range managers {
		resp = append(resp, ManagerResponse{ID: m.ID, User: toUserResponse(m.User)})
	}
	return resp, nil
}

func (s *managerService) DeleteManager(ctx context.Context, authUser domain.AuthUser, todoID, managerID uint) (err error) {
	defer func() {
		logResult(ctx, s.logger, "ManagerService", "DeleteManager", err,
			"user_id", authUser.ID, "todo_id", todoID, "manager_id", managerID)
	}()

	todo, err := s.todos.FindByID(ctx, todoID)
	if err != nil {
		return lookupError(err, "Todo not found")
	}
	if todo.UserID != authUser.ID {
		return forbidden("only the todo owner can remove managers")
	}

	manager, err := s.managers.FindByID(ctx, managerID)
	if err != nil {
		return lookupError(err, "Manager not found")
	}
	if manager.TodoID != todo.ID {
		return notFound("Manager not found")
	}
	if manager.UserID == todo.UserID {
		return invalidRequest("the todo owner cannot be removed as a manager")
	}

	if err := s.managers.Delete(ctx, manager); err != nil {
		return unavailable("database unavailable", err)
	}
	return nil
}
