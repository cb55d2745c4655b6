package domain

import "time"

type User struct {
	ID        uint     `gorm:"primaryKey"`
	Email     string   `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string   `gorm:"type:varchar(255);not null"` // bcrypt digest
	UserRole  UserRole `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromAuthUser builds a detached User carrying only the identity fields of an
// authenticated principal. It is used to embed owner data without a lookup.
func FromAuthUser(authUser AuthUser) User {
	return User{ID: authUser.ID, Email: authUser.Email, UserRole: authUser.UserRole}
}

// AuthUser is the identity resolved from a verified bearer token.
type AuthUser struct {
	ID       uint
	Email    string
	UserRole UserRole
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (a AuthUser) IsAdmin() bool {
	return a.UserRole == RoleAdmin
}
