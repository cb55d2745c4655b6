package repository

import (
	"context"

	"github.com/Tomlord1122/weather-todo/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApiUseTimeRepository stores cumulative admin usage per user.
type ApiUseTimeRepository interface {
	// AddUseTime creates the user's row with millis or adds millis to the
	// existing total in a single statement.
	AddUseTime(ctx context.Context, userID uint, millis int64) error
	FindByUserID(ctx context.Context, userID uint) (*domain.ApiUseTime, error)
}

type gormApiUseTimeRepository struct {
	db *gorm.DB
}

func NewGormApiUseTimeRepository(db *gorm.DB) ApiUseTimeRepository {
	return &gormApiUseTimeRepository{db: db}
}

func (r *gormApiUseTimeRepository) AddUseTime(ctx context.Context, userID uint, millis int64) error {
	row := domain.ApiUseTime{UserID: userID, CumulativeMillis: millis}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"cumulative_millis": gorm.Expr("api_use_times.cumulative_millis + EXCLUDED.cumulative_millis"),
		}),
	}).Create(&row).Error
}

func (r *gormApiUseTimeRepository) FindByUserID(ctx context.Context, userID uint) (*domain.ApiUseTime, error) {
	var row domain.ApiUseTime
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
