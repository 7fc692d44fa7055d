package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
)

// CreditReader reads credit balances.
type CreditReader interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (float64, error)
}

// CreditService serves credit balance reads. Balances are mutated only by
// swap settlement.
type CreditService struct {
	reader CreditReader
}

// NewCreditService creates a new CreditService instance.
func NewCreditService(reader CreditReader) *CreditService {
	return &CreditService{reader: reader}
}

// Balance returns the user's current credit balance.
func (svc *CreditService) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	balance, err := svc.reader.GetBalance(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get balance", "err", err)
		return 0, err
	}
	return balance, nil
}
