package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`                 // Primary key
	Name         string    `json:"name" db:"name"`                  // Display name
	Email        string    `json:"email" db:"email"`                // Unique email (case-sensitive as stored)
	PasswordHash string    `json:"-" db:"password_hash"`            // Bcrypt hash, never serialized
	Location     *string   `json:"location,omitempty" db:"location"` // Optional location string
	IsVerified   bool      `json:"is_verified" db:"is_verified"`    // Email verification flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"`      // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`      // Last update timestamp
}

// PublicUser is the externally visible subset of a user record.
type PublicUser struct {
	UserID    uuid.UUID `json:"id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email,omitempty" db:"email"`
	Location  *string   `json:"location,omitempty" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Public returns the externally visible view of the user.
func (u *UserDB) Public() PublicUser {
	return PublicUser{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}
