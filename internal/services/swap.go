package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/repositories"
)

// Error variables
var (
	ErrSwapNotFound        = errors.New("swap not found")
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrSelfSwap            = errors.New("cannot open a swap with yourself")
	ErrNotParticipant      = errors.New("not a participant of this swap")
	ErrInvalidTransition   = errors.New("swap is not in a state that allows this action")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidCreditAmount = errors.New("credit amount must not be negative")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated        = errors.New("swap already rated")
)

// SwapReader defines read operations for swaps.
type SwapReader interface {
	GetByID(ctx context.Context, swapID uuid.UUID) (*models.SwapDB, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SwapDB, error)
}

// SwapWriter defines write operations for swaps.
type SwapWriter interface {
	Create(ctx context.Context, requesterID, partnerID uuid.UUID, offeredSkill, wantedSkill string, credits float64) (*models.SwapDB, error)
	UpdateStatus(ctx context.Context, swapID uuid.UUID, from, to string) error
	Complete(ctx context.Context, swapID, requesterID, partnerID uuid.UUID, credits float64) error
}

// RatingWriter records swap ratings.
type RatingWriter interface {
	Save(ctx context.Context, swapID, raterID, rateeID uuid.UUID, score int) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SwapService handles the swap-request lifecycle and settlement events.
type SwapService struct {
	reader      SwapReader
	writer      SwapWriter
	ratings     RatingWriter
	users       UserReader
	kafkaWriter KafkaWriter
}

// NewSwapService creates a new SwapService.
func NewSwapService(reader SwapReader, writer SwapWriter, ratings RatingWriter, users UserReader, kafkaWriter KafkaWriter) *SwapService {
	return &SwapService{
		reader:      reader,
		writer:      writer,
		ratings:     ratings,
		users:       users,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a swap event to Kafka. Publish failures are logged
// and never surfaced to the caller.
func (svc *SwapService) publishEvent(ctx context.Context, event models.SwapEvent) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal swap event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.SwapID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish swap event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("swap event published", "event_id", event.EventID, "type", event.Type)
	}
}

// Create opens a pending swap request against another user.
func (svc *SwapService) Create(ctx context.Context, requesterID, partnerID uuid.UUID, offeredSkill, wantedSkill string, credits float64) (*models.SwapDB, error) {
	if requesterID == partnerID {
		return nil, ErrSelfSwap
	}
	if credits < 0 {
		return nil, ErrInvalidCreditAmount
	}

	partner, err := svc.users.GetByID(ctx, partnerID)
	if err != nil {
		logger.Log.Errorw("failed to look up partner", "err", err)
		return nil, err
	}
	if partner == nil {
		return nil, ErrPartnerNotFound
	}

	swap, err := svc.writer.Create(ctx, requesterID, partnerID, offeredSkill, wantedSkill, credits)
	if err != nil {
		logger.Log.Errorw("failed to create swap", "err", err)
		return nil, err
	}

	return swap, nil
}

// Accept moves a pending swap to accepted. Only the partner may accept.
func (svc *SwapService) Accept(ctx context.Context, userID, swapID uuid.UUID) error {
	return svc.answer(ctx, userID, swapID, models.SwapAccepted)
}

// Reject moves a pending swap to rejected. Only the partner may reject.
func (svc *SwapService) Reject(ctx context.Context, userID, swapID uuid.UUID) error {
	return svc.answer(ctx, userID, swapID, models.SwapRejected)
}

func (svc *SwapService) answer(ctx context.Context, userID, swapID uuid.UUID, to string) error {
	swap, err := svc.reader.GetByID(ctx, swapID)
	if err != nil {
		logger.Log.Errorw("failed to get swap", "err", err)
		return err
	}
	if swap == nil {
		return ErrSwapNotFound
	}
	if swap.PartnerID != userID {
		return ErrNotParticipant
	}
	if swap.Status != models.SwapPending {
		return ErrInvalidTransition
	}

	if err := svc.writer.UpdateStatus(ctx, swapID, models.SwapPending, to); err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			return ErrInvalidTransition
		}
		logger.Log.Errorw("failed to update swap status", "err", err)
		return err
	}

	return nil
}

// Complete settles an accepted swap: credits move from requester to partner
// and both completed-swap counters advance, atomically. Either participant
// may complete. A swap_completed event is published after the commit.
func (svc *SwapService) Complete(ctx context.Context, userID, swapID uuid.UUID) error {
	swap, err := svc.reader.GetByID(ctx, swapID)
	if err != nil {
		logger.Log.Errorw("failed to get swap", "err", err)
		return err
	}
	if swap == nil {
		return ErrSwapNotFound
	}
	if swap.RequesterID != userID && swap.PartnerID != userID {
		return ErrNotParticipant
	}
	if swap.Status != models.SwapAccepted {
		return ErrInvalidTransition
	}

	if err := svc.writer.Complete(ctx, swapID, swap.RequesterID, swap.PartnerID, swap.Credits); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStaleStatus):
			return ErrInvalidTransition
		case errors.Is(err, repositories.ErrBalanceTooLow):
			return ErrInsufficientCredits
		}
		logger.Log.Errorw("failed to settle swap", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.SwapEvent{
		EventID:     uuid.NewString(),
		Type:        "swap_completed",
		SwapID:      swapID.String(),
		RequesterID: swap.RequesterID.String(),
		PartnerID:   swap.PartnerID.String(),
		Credits:     swap.Credits,
		Timestamp:   time.Now().Unix(),
	})

	return nil
}

// Rate records a 1..5 rating on a completed swap; each participant may rate
// once, and the rating lands on the other participant's reputation.
func (svc *SwapService) Rate(ctx context.Context, raterID, swapID uuid.UUID, score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidRating
	}

	swap, err := svc.reader.GetByID(ctx, swapID)
	if err != nil {
		logger.Log.Errorw("failed to get swap", "err", err)
		return err
	}
	if swap == nil {
		return ErrSwapNotFound
	}
	if swap.RequesterID != raterID && swap.PartnerID != raterID {
		return ErrNotParticipant
	}
	if swap.Status != models.SwapCompleted {
		return ErrInvalidTransition
	}

	rateeID := swap.RequesterID
	if raterID == swap.RequesterID {
		rateeID = swap.PartnerID
	}

	if err := svc.ratings.Save(ctx, swapID, raterID, rateeID, score); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRating) {
			return ErrAlreadyRated
		}
		logger.Log.Errorw("failed to save rating", "err", err)
		return err
	}

	return nil
}

// List returns all swaps the user participates in.
func (svc *SwapService) List(ctx context.Context, userID uuid.UUID) ([]models.SwapDB, error) {
	swaps, err := svc.reader.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list swaps", "err", err)
		return nil, err
	}
	return swaps, nil
}
