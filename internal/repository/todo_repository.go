package repository

import (
	"context"
	"time"

	"github.com/Tomlord1122/weather-todo/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	// Create inserts the todo and the owner's implicit manager row in one transaction.
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)
	// FindByIDWithUser eagerly loads the owner.
	FindByIDWithUser(ctx context.Context, id uint) (*domain.Todo, error)
	// FindAllOrderByModifiedAtDesc returns one page of todos with their owners,
	// most recently modified first, plus the total number of todos.
	FindAllOrderByModifiedAtDesc(ctx context.Context, offset, limit int) ([]domain.Todo, int64, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The owner row already exists; never upsert it through the association.
		if err := tx.Omit(clause.Associations).Create(todo).Error; err != nil {
			return err
		}
		owner := domain.Manager{TodoID: todo.ID, UserID: todo.UserID}
		if err := tx.Omit(clause.Associations).Create(&owner).Error; err != nil {
			return err
		}
		todo.Managers = []domain.Manager{owner}
		return nil
	})
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) FindByIDWithUser(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	if err := r.db.WithContext(ctx).Joins("User").First(&todo, "todos.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) FindAllOrderByModifiedAtDesc(ctx context.Context, offset, limit int) ([]domain.Todo, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&domain.Todo{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []domain.Todo
	err := db.Joins("User").
		Order("todos.modified_at DESC").
		Order("todos.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&todos).Error
	if err != nil {
		return nil, 0, err
	}
	return todos, total, nil
}

func (r *gormTodoRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Todo{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// touchTodo bumps the modified timestamp of a todo inside tx. Manager and
// comment changes count as modifications of their todo.
func touchTodo(tx *gorm.DB, todoID uint) error {
	return tx.Model(&domain.Todo{}).
		Where("id = ?", todoID).
		Update("modified_at", time.Now()).Error
}
