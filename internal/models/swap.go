package models

import (
	"time"

	"github.com/google/uuid"
)

// Swap statuses
const (
	SwapPending   = "pending"
	SwapAccepted  = "accepted"
	SwapRejected  = "rejected"
	SwapCompleted = "completed"
)

// SwapDB represents a swap request between two users.
type SwapDB struct {
	SwapID       uuid.UUID `json:"id" db:"swap_id"`
	RequesterID  uuid.UUID `json:"requester_id" db:"requester_id"`
	PartnerID    uuid.UUID `json:"partner_id" db:"partner_id"`
	OfferedSkill string    `json:"offered_skill" db:"offered_skill"`
	WantedSkill  string    `json:"wanted_skill" db:"wanted_skill"`
	Credits      float64   `json:"credits" db:"credits"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SwapEvent is published to Kafka when a swap settles.
type SwapEvent struct {
	EventID     string  `json:"event_id"`
	Type        string  `json:"type"` // e.g. swap_completed
	SwapID      string  `json:"swap_id"`
	RequesterID string  `json:"requester_id"`
	PartnerID   string  `json:"partner_id"`
	Credits     float64 `json:"credits"`
	Timestamp   int64   `json:"timestamp"`
}
