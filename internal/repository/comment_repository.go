package repository

import (
	"context"

	"github.com/Tomlord1122/weather-todo/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// Create inserts the comment and bumps its todo's modified timestamp.
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)
	// FindByTodoID lists the comments of a todo with their authors, oldest first.
	FindByTodoID(ctx context.Context, todoID uint) ([]domain.Comment, error)
	Delete(ctx context.Context, comment *domain.Comment) error
}

type gormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		return touchTodo(tx, comment.TodoID)
	})
}

func (r *gormCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *gormCommentRepository) FindByTodoID(ctx context.Context, todoID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Joins("User").
		Where("comments.todo_id = ?", todoID).
		Order("comments.created_at ASC").
		Order("comments.id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *gormCommentRepository) Delete(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Comment{}, comment.ID).Error; err != nil {
			return err
		}
		return touchTodo(tx, comment.TodoID)
	})
}
