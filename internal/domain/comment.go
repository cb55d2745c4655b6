package domain

import "time"

type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Contents  string `gorm:"not null"`
	UserID    uint   `gorm:"not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	TodoID    uint   `gorm:"not null;index"`
	Todo      Todo   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
