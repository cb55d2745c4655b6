package service

import (
	"time"

	"github.com/Tomlord1122/weather-todo/internal/domain"
)

// Request and response DTOs keep the HTTP layer and the database layer apart.

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserRole string `json:"userRole"`
}

type SignupResponse struct {
	BearerToken string `json:"bearerToken"`
	UserID      uint   `json:"userId"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	BearerToken string `json:"bearerToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ChangeUserRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse is the user summary embedded in other responses.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type TodoSaveRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

type TodoSaveResponse struct {
	ID       uint         `json:"id"`
	Title    string       `json:"title"`
	Contents string       `json:"contents"`
	Weather  string       `json:"weather"`
	User     UserResponse `json:"user"`
}

type TodoResponse struct {
	ID         uint         `json:"id"`
	Title      string       `json:"title"`
	Contents   string       `json:"contents"`
	Weather    string       `json:"weather"`
	User       UserResponse `json:"user"`
	CreatedAt  string       `json:"createdAt"`
	ModifiedAt string       `json:"modifiedAt"`
}

// PageResponse is one page of a listing. Page is 1-indexed.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type ManagerSaveRequest struct {
	ManagerUserID uint `json:"managerUserId"`
}

type ManagerSaveResponse struct {
	ID   uint         `json:"id"`
	User UserResponse `json:"user"`
}

type ManagerResponse struct {
	ID   uint         `json:"id"`
	User UserResponse `json:"user"`
}

type CommentSaveRequest struct {
	Contents string `json:"contents"`
}

type CommentSaveResponse struct {
	ID       uint         `json:"id"`
	Contents string       `json:"contents"`
	User     UserResponse `json:"user"`
}

type CommentResponse struct {
	ID       uint         `json:"id"`
	Contents string       `json:"contents"`
	User     UserResponse `json:"user"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

func toTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:         todo.ID,
		Title:      todo.Title,
		Contents:   todo.Contents,
		Weather:    todo.Weather,
		User:       toUserResponse(todo.User),
		CreatedAt:  todo.CreatedAt.Format(time.RFC3339),
		ModifiedAt: todo.ModifiedAt.Format(time.RFC3339),
	}
}
