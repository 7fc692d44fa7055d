package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRatingWriteRepository_Save(t *testing.T) {
	swapID := uuid.New()
	raterID := uuid.New()
	rateeID := uuid.New()

	t.Run("rating and reputation update commit together", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRatingWriteRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO swap_ratings")).
			WithArgs(swapID, raterID, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE reputations")).
			WithArgs(rateeID, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Save(context.Background(), swapID, raterID, rateeID, 5)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second rating from the same rater rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRatingWriteRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO swap_ratings")).
			WithArgs(swapID, raterID, 4).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Save(context.Background(), swapID, raterID, rateeID, 4)
		assert.ErrorIs(t, err, ErrDuplicateRating)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreditReadRepository_GetBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreditReadRepository(db)

	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT balance FROM credit_balances")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(25.0))

	balance, err := repo.GetBalance(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
