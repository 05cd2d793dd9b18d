// Package models contains data models for the auth service.
package models

import "time"

// Roles assignable to users. Role is a fixed two-value tier: admins have
// full access, supervisors are restricted.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
)

// ValidRole reports whether role is one of the known access tiers.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSupervisor
}

// User represents an authenticated user in the system.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
