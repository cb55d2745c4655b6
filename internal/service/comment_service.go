package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Tomlord1122/weather-todo/internal/domain"
	"github.com/Tomlord1122/weather-todo/internal/repository"
)

// CommentService attaches comments to todos.
//
// Any authenticated user may comment on an existing todo; commenting is not
// restricted to the todo's managers.
type CommentService interface {
	SaveComment(ctx context.Context, authUser domain.AuthUser, todoID uint, req CommentSaveRequest) (*CommentSaveResponse, error)
	// GetComments lists the comments of a todo oldest first. A missing todo
	// yields an empty list.
	GetComments(ctx context.Context, todoID uint) ([]CommentResponse, error)
}

type commentService struct {
	comments repository.CommentRepository
	todos    repository.TodoRepository
	logger   *slog.Logger
}

func NewCommentService(comments repository.CommentRepository, todos repository.TodoRepository, logger *slog.Logger) CommentService {
	return &commentService{comments: comments, todos: todos, logger: defaultLogger(logger)}
}

func (s *commentService) SaveComment(ctx context.Context, authUser domain.AuthUser, todoID uint, req CommentSaveRequest) (resp *CommentSaveResponse, err error) {
	defer func() {
		logResult(ctx, s.logger, "CommentService", "SaveComment", err, "user_id", authUser.ID, "todo_id", todoID)
	}()

	if strings.TrimSpace(req.Contents) == "" {
		return nil, invalidRequest("contents cannot be empty")
	}

	exists, err := s.todos.ExistsByID(ctx, todoID)
	if err != nil {
		return nil, unavailable("database unavailable", err)
	}
	if !exists {
		return nil, notFound("Todo not found")
	}

	comment := &domain.Comment{Contents: req.Contents, UserID: authUser.ID, TodoID: todoID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, unavailable("database unavailable", err)
	}

	return &CommentSaveResponse{
		ID:       comment.ID,
		Contents: comment.Contents,
		User:     toUserResponse(domain.FromAuthUser(authUser)),
	}, nil
}

func (s *commentService) GetComments(ctx context.Context, todoID uint) ([]CommentResponse, error) {
	comments, err := s.comments.FindByTodoID(ctx, todoID)
	if err != nil {
		return nil, unavailable("database unavailable", err)
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, CommentResponse{ID: c.ID, Contents: c.Contents, User: toUserResponse(c.User)})
	}
	return resp, nil
}

// CommentAdminService holds the admin-only comment operations.
type CommentAdminService interface {
	DeleteComment(ctx context.Context, actor domain.AuthUser, commentID uint) error
}

type commentAdminService struct {
	comments repository.CommentRepository
	logger   *slog.Logger
}

func NewCommentAdminService(comments repository.CommentRepository, logger *slog.Logger) CommentAdminService {
	return &commentAdminService{comments: comments, logger: defaultLogger(logger)}
}

func (s *commentAdminService) DeleteComment(ctx context.Context, actor domain.AuthUser, commentID uint) (err error) {
	defer func() {
		logResult(ctx, s.logger, "CommentAdminService", "DeleteComment", err, "actor_id", actor.ID, "comment_id", commentID)
	}()

	if err := RequireAdmin(actor); err != nil {
		return err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return lookupError(err, "Comment not found")
	}
	if err := s.comments.Delete(ctx, comment); err != nil {
		return unavailable("database unavailable", err)
	}
	return nil
}
