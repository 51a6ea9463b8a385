package model

import "time"

// User stores login accounts with role-based access.
// Role: "admin" | "user"
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;not null"`
	// PasswordHash is bcrypt(salt ‖ password). The salt is regenerated on
	// every password change, never reused across credentials.
	PasswordHash string `gorm:"not null"`
	Salt         string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'admin'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
