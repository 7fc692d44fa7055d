package models

import (
	"time"

	"github.com/google/uuid"
)

// CreditBalanceDB represents a user's credit balance, one-to-one with users.
type CreditBalanceDB struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"` // Owning user
	Balance   float64   `json:"balance" db:"balance"` // Current credit balance
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
