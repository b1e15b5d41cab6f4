package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID  `json:"id" db:"id"`                       // Primary key
	Username     string     `json:"username" db:"username"`           // Unique username, 3-50 chars
	Email        string     `json:"email" db:"email"`                 // Unique email
	PasswordHash string     `json:"-" db:"password_hash"`             // Hashed password, never serialized
	FirstName    *string    `json:"first_name" db:"first_name"`       // Optional
	LastName     *string    `json:"last_name" db:"last_name"`         // Optional
	IsActive     bool       `json:"is_active" db:"is_active"`         // Deactivated users cannot authenticate
	LastLogin    *time.Time `json:"last_login" db:"last_login"`       // Set on each successful login
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`       // Creation timestamp
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`       // Last update timestamp
}
