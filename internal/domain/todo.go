package domain

import "time"

// Todo is a task owned by a single user. Weather is captured once when the
// todo is created and never refreshed.
type Todo struct {
	ID         uint      `gorm:"primaryKey"`
	Title      string    `gorm:"not null"`
	Contents   string    `gorm:"not null"`
	Weather    string    `gorm:"not null"`
	UserID     uint      `gorm:"not null;index"` // owner, never reassigned
	User       User      `gorm:"constraint:OnDelete:RESTRICT"`
	Managers   []Manager `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	ModifiedAt time.Time `gorm:"autoUpdateTime;index"`
}
