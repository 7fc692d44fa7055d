package models

import (
	"time"

	"github.com/google/uuid"
)

// Reputation defaults applied when the row is created with its user.
const (
	DefaultTrustScore = 50 // midpoint of the 0..100 trust range
)

// ReputationDB represents a user's reputation record, one-to-one with users.
type ReputationDB struct {
	UserID         uuid.UUID `json:"user_id" db:"user_id"`                 // Owning user
	OverallRating  float64   `json:"overall_rating" db:"overall_rating"`   // Running mean of received ratings
	TotalRatings   int       `json:"total_ratings" db:"total_ratings"`     // Count of received ratings
	TrustScore     int       `json:"trust_score" db:"trust_score"`         // 0..100, starts at the midpoint
	CompletedSwaps int       `json:"completed_swaps" db:"completed_swaps"` // Count of completed swaps
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
