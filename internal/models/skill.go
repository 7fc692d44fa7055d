package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill kinds
const (
	SkillOffered = "offered"
	SkillWanted  = "wanted"
)

// SkillDB represents a skill a user offers or wants to learn.
type SkillDB struct {
	SkillID   uuid.UUID `json:"id" db:"skill_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Kind      string    `json:"kind" db:"kind"` // offered or wanted
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SearchResult is a discovery match: a user with an offered skill and a
// reputation summary.
type SearchResult struct {
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Name           string    `json:"name" db:"name"`
	Location       *string   `json:"location,omitempty" db:"location"`
	SkillName      string    `json:"skill_name" db:"skill_name"`
	SkillCategory  string    `json:"skill_category" db:"skill_category"`
	OverallRating  float64   `json:"overall_rating" db:"overall_rating"`
	CompletedSwaps int       `json:"completed_swaps" db:"completed_swaps"`
}
