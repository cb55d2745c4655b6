package domain

// Manager links a user to a todo they co-own. A (TodoID, UserID) pair is unique.
type Manager struct {
	ID     uint `gorm:"primaryKey"`
	TodoID uint `gorm:"not null;uniqueIndex:idx_managers_todo_user"`
	UserID uint `gorm:"not null;uniqueIndex:idx_managers_todo_user"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`
}
