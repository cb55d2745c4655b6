package repository

import (
	"context"

	"github.com/Tomlord1122/weather-todo/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ManagerRepository defines the interface for manager assignment data operations
type ManagerRepository interface {
	// Create inserts a manager row. A duplicate (todo, user) pair fails with
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, manager *domain.Manager) error
	FindByID(ctx context.Context, id uint) (*domain.Manager, error)
	// FindByTodoID lists the managers of a todo with their users, in insertion order.
	FindByTodoID(ctx context.Context, todoID uint) ([]domain.Manager, error)
	ExistsByTodoIDAndUserID(ctx context.Context, todoID, userID uint) (bool, error)
	Delete(ctx context.Context, manager *domain.Manager) error
}

type gormManagerRepository struct {
	db *gorm.DB
}

func NewGormManagerRepository(db *gorm.DB) ManagerRepository {
	return &gormManagerRepository{db: db}
}

func (r *gormManagerRepository) Create(ctx context.Context, manager *domain.Manager) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(manager).Error; err != nil {
			return err
		}
		return touchTodo(tx, manager.TodoID)
	})
}

func (r *gormManagerRepository) FindByID(ctx context.Context, id uint) (*domain.Manager, error) {
	var manager domain.Manager
	if err := r.db.WithContext(ctx).First(&manager, id).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *gormManagerRepository) FindByTodoID(ctx context.Context, todoID uint) ([]domain.Manager, error) {
	var managers []domain.Manager
	err := r.db.WithContext(ctx).
		Joins("User").
		Where("managers.todo_id = ?", todoID).
		Order("managers.id ASC").
		Find(&managers).Error
	if err != nil {
		return nil, err
	}
	return managers, nil
}

func (r *gormManagerRepository) ExistsByTodoIDAndUserID(ctx context.Context, todoID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Manager{}).
		Where("todo_id = ? AND user_id = ?", todoID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormManagerRepository) Delete(ctx context.Context, manager *domain.Manager) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Manager{}, manager.ID).Error; err != nil {
			return err
		}
		return touchTodo(tx, manager.TodoID)
	})
}
