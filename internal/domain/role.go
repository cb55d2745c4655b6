package domain

import (
	"errors"
	"strings"
)

// UserRole is the closed set of roles a user can hold.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

var ErrInvalidUserRole = errors.New("invalid user role")

// ParseUserRole accepts a role name case-insensitively.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidUserRole
}

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r UserRole) String() string {
	return string(r)
}
