package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/repositories"
	"github.com/skillswap/backend/internal/services"
)

func newSwapService(ctrl *gomock.Controller) (*services.SwapService, *services.MockSwapReader, *services.MockSwapWriter, *services.MockRatingWriter, *services.MockUserReader, *services.MockKafkaWriter) {
	reader := services.NewMockSwapReader(ctrl)
	writer := services.NewMockSwapWriter(ctrl)
	ratings := services.NewMockRatingWriter(ctrl)
	users := services.NewMockUserReader(ctrl)
	kafkaWriter := services.NewMockKafkaWriter(ctrl)
	svc := services.NewSwapService(reader, writer, ratings, users, kafkaWriter)
	return svc, reader, writer, ratings, users, kafkaWriter
}

func TestSwapService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, writer, _, users, _ := newSwapService(ctrl)

	requesterID := uuid.New()
	partnerID := uuid.New()

	t.Run("successful create", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), partnerID).Return(&models.UserDB{UserID: partnerID}, nil)
		writer.EXPECT().
			Create(gomock.Any(), requesterID, partnerID, "Guitar", "Spanish", 10.0).
			Return(&models.SwapDB{SwapID: uuid.New(), Status: models.SwapPending}, nil)

		swap, err := svc.Create(context.Background(), requesterID, partnerID, "Guitar", "Spanish", 10)
		assert.NoError(t, err)
		assert.Equal(t, models.SwapPending, swap.Status)
	})

	t.Run("self swap rejected", func(t *testing.T) {
		swap, err := svc.Create(context.Background(), requesterID, requesterID, "Guitar", "Spanish", 10)
		assert.ErrorIs(t, err, services.ErrSelfSwap)
		assert.Nil(t, swap)
	})

	t.Run("negative credits rejected", func(t *testing.T) {
		swap, err := svc.Create(context.Background(), requesterID, partnerID, "Guitar", "Spanish", -1)
		assert.ErrorIs(t, err, services.ErrInvalidCreditAmount)
		assert.Nil(t, swap)
	})

	t.Run("partner not found", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), partnerID).Return(nil, nil)

		swap, err := svc.Create(context.Background(), requesterID, partnerID, "Guitar", "Spanish", 10)
		assert.ErrorIs(t, err, services.ErrPartnerNotFound)
		assert.Nil(t, swap)
	})
}

func TestSwapService_Accept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer, _, _, _ := newSwapService(ctrl)

	requesterID := uuid.New()
	partnerID := uuid.New()
	swapID := uuid.New()

	pending := &models.SwapDB{SwapID: swapID, RequesterID: requesterID, PartnerID: partnerID, Status: models.SwapPending}

	tests := []struct {
		name    string
		userID  uuid.UUID
		swap    *models.SwapDB
		updErr  error
		wantErr error
	}{
		{
			name:   "partner accepts pending swap",
			userID: partnerID,
			swap:   pending,
		},
		{
			name:    "swap not found",
			userID:  partnerID,
			swap:    nil,
			wantErr: services.ErrSwapNotFound,
		},
		{
			name:    "requester cannot accept own request",
			userID:  requesterID,
			swap:    pending,
			wantErr: services.ErrNotParticipant,
		},
		{
			name:    "already accepted",
			userID:  partnerID,
			swap:    &models.SwapDB{SwapID: swapID, RequesterID: requesterID, PartnerID: partnerID, Status: models.SwapAccepted},
			wantErr: services.ErrInvalidTransition,
		},
		{
			name:    "status changed between read and write",
			userID:  partnerID,
			swap:    pending,
			updErr:  repositories.ErrStaleStatus,
			wantErr: services.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader.EXPECT().GetByID(gomock.Any(), swapID).Return(tt.swap, nil)

			if tt.swap != nil && tt.swap.PartnerID == tt.userID && tt.swap.Status == models.SwapPending {
				writer.EXPECT().
					UpdateStatus(gomock.Any(), swapID, models.SwapPending, models.SwapAccepted).
					Return(tt.updErr)
			}

			err := svc.Accept(context.Background(), tt.userID, swapID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSwapService_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer, _, _, kafkaWriter := newSwapService(ctrl)

	requesterID := uuid.New()
	partnerID := uuid.New()
	swapID := uuid.New()

	accepted := &models.SwapDB{
		SwapID:      swapID,
		RequesterID: requesterID,
		PartnerID:   partnerID,
		Status:      models.SwapAccepted,
		Credits:     15,
	}

	t.Run("requester completes accepted swap and event is published", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(accepted, nil)
		writer.EXPECT().Complete(gomock.Any(), swapID, requesterID, partnerID, 15.0).Return(nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Complete(context.Background(), requesterID, swapID))
	})

	t.Run("publish failure does not fail completion", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(accepted, nil)
		writer.EXPECT().Complete(gomock.Any(), swapID, requesterID, partnerID, 15.0).Return(nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		assert.NoError(t, svc.Complete(context.Background(), partnerID, swapID))
	})

	t.Run("outsider cannot complete", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(accepted, nil)

		err := svc.Complete(context.Background(), uuid.New(), swapID)
		assert.ErrorIs(t, err, services.ErrNotParticipant)
	})

	t.Run("pending swap cannot be completed", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(&models.SwapDB{
			SwapID: swapID, RequesterID: requesterID, PartnerID: partnerID, Status: models.SwapPending,
		}, nil)

		err := svc.Complete(context.Background(), requesterID, swapID)
		assert.ErrorIs(t, err, services.ErrInvalidTransition)
	})

	t.Run("insufficient credits", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(accepted, nil)
		writer.EXPECT().Complete(gomock.Any(), swapID, requesterID, partnerID, 15.0).Return(repositories.ErrBalanceTooLow)

		err := svc.Complete(context.Background(), requesterID, swapID)
		assert.ErrorIs(t, err, services.ErrInsufficientCredits)
	})
}

func TestSwapService_Rate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, _, ratings, _, _ := newSwapService(ctrl)

	requesterID := uuid.New()
	partnerID := uuid.New()
	swapID := uuid.New()

	completed := &models.SwapDB{
		SwapID:      swapID,
		RequesterID: requesterID,
		PartnerID:   partnerID,
		Status:      models.SwapCompleted,
	}

	t.Run("requester rates partner", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(completed, nil)
		ratings.EXPECT().Save(gomock.Any(), swapID, requesterID, partnerID, 5).Return(nil)

		assert.NoError(t, svc.Rate(context.Background(), requesterID, swapID, 5))
	})

	t.Run("partner rates requester", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(completed, nil)
		ratings.EXPECT().Save(gomock.Any(), swapID, partnerID, requesterID, 3).Return(nil)

		assert.NoError(t, svc.Rate(context.Background(), partnerID, swapID, 3))
	})

	t.Run("score out of range", func(t *testing.T) {
		assert.ErrorIs(t, svc.Rate(context.Background(), requesterID, swapID, 0), services.ErrInvalidRating)
		assert.ErrorIs(t, svc.Rate(context.Background(), requesterID, swapID, 6), services.ErrInvalidRating)
	})

	t.Run("rating an incomplete swap", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(&models.SwapDB{
			SwapID: swapID, RequesterID: requesterID, PartnerID: partnerID, Status: models.SwapAccepted,
		}, nil)

		assert.ErrorIs(t, svc.Rate(context.Background(), requesterID, swapID, 4), services.ErrInvalidTransition)
	})

	t.Run("rating twice", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), swapID).Return(completed, nil)
		ratings.EXPECT().Save(gomock.Any(), swapID, requesterID, partnerID, 4).Return(repositories.ErrDuplicateRating)

		assert.ErrorIs(t, svc.Rate(context.Background(), requesterID, swapID, 4), services.ErrAlreadyRated)
	})
}
