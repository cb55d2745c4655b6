package domain

// ApiUseTime accumulates the time a user has spent in privileged admin
// operations. There is at most one row per user.
type ApiUseTime struct {
	ID               uint  `gorm:"primaryKey"`
	UserID           uint  `gorm:"not null;uniqueIndex"`
	CumulativeMillis int64 `gorm:"not null;default:0"`
}

// Models lists every entity managed by the schema migration, in dependency order.
func Models() []any {
	return []any{&User{}, &Todo{}, &Manager{}, &Comment{}, &ApiUseTime{}}
}
