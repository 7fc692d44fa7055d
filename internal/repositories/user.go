package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

// ErrEmailExists is returned when an insert hits the unique constraint on
// users.email. It backstops the service-level precheck under concurrency.
var ErrEmailExists = errors.New("email already exists")

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil if none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, name, email, password_hash, location, is_verified, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"email_domain", emailDomain(email),
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil if none exists.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, name, email, password_hash, location, is_verified, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetProfile returns the user joined with their reputation, credit balance,
// and social stats, or nil if the user does not exist.
func (r *UserReadRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const query = `
		SELECT u.user_id, u.name, u.email, u.location, u.created_at,
		       r.overall_rating, r.total_ratings, r.trust_score, r.completed_swaps,
		       c.balance,
		       s.followers, s.following, s.posts
		FROM users u
		JOIN reputations r ON r.user_id = u.user_id
		JOIN credit_balances c ON c.user_id = u.user_id
		JOIN social_stats s ON s.user_id = u.user_id
		WHERE u.user_id = $1
	`

	var row struct {
		UserID         uuid.UUID `db:"user_id"`
		Name           string    `db:"name"`
		Email          string    `db:"email"`
		Location       *string   `db:"location"`
		CreatedAt      time.Time `db:"created_at"`
		OverallRating  float64   `db:"overall_rating"`
		TotalRatings   int       `db:"total_ratings"`
		TrustScore     int       `db:"trust_score"`
		CompletedSwaps int       `db:"completed_swaps"`
		Balance        float64   `db:"balance"`
		Followers      int       `db:"followers"`
		Following      int       `db:"following"`
		Posts          int       `db:"posts"`
	}

	err := r.db.GetContext(ctx, &row, query, userID)

	logger.Log.Infow("profile query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	profile := &models.Profile{
		User: models.PublicUser{
			UserID:    row.UserID,
			Name:      row.Name,
			Email:     row.Email,
			Location:  row.Location,
			CreatedAt: row.CreatedAt,
		},
		Reputation: models.ReputationDB{
			UserID:         row.UserID,
			OverallRating:  row.OverallRating,
			TotalRatings:   row.TotalRatings,
			TrustScore:     row.TrustScore,
			CompletedSwaps: row.CompletedSwaps,
		},
		Credits: models.CreditBalanceDB{UserID: row.UserID, Balance: row.Balance},
		Stats: models.SocialStatsDB{
			UserID:    row.UserID,
			Followers: row.Followers,
			Following: row.Following,
			Posts:     row.Posts,
		},
	}
	return profile, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts the user row plus its reputation, credit balance, and
// social stats rows in a single transaction. Either all four rows commit or
// none do. A unique-constraint hit on email maps to ErrEmailExists.
func (r *UserWriteRepository) Create(ctx context.Context, name, email, passwordHash string, location *string) (*models.UserDB, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin registration transaction", "error", err)
		return nil, err
	}
	defer tx.Rollback()

	const insertUser = `
		INSERT INTO users (user_id, name, email, password_hash, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING user_id, name, email, password_hash, location, is_verified, created_at, updated_at
	`

	var user models.UserDB
	err = tx.GetContext(ctx, &user, insertUser, uuid.New(), name, email, passwordHash, location)

	logger.Log.Infow("insert user",
		"query", strings.Join(strings.Fields(insertUser), " "),
		"email_domain", emailDomain(email),
		"error", err,
	)

	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	dependents := []string{
		`INSERT INTO reputations (user_id, overall_rating, total_ratings, trust_score, completed_swaps, updated_at)
		 VALUES ($1, 0, 0, 50, 0, NOW())`,
		`INSERT INTO credit_balances (user_id, balance, updated_at) VALUES ($1, 0, NOW())`,
		`INSERT INTO social_stats (user_id, followers, following, posts, updated_at) VALUES ($1, 0, 0, 0, NOW())`,
	}

	for _, q := range dependents {
		if _, err := tx.ExecContext(ctx, q, user.UserID); err != nil {
			logger.Log.Errorw("failed to insert dependent record",
				"query", strings.Join(strings.Fields(q), " "),
				"user_id", user.UserID,
				"error", err,
			)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit registration transaction", "user_id", user.UserID, "error", err)
		return nil, err
	}

	return &user, nil
}

// Update applies the non-nil fields to the user row and returns the result.
func (r *UserWriteRepository) Update(ctx context.Context, userID uuid.UUID, name, location *string) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET name = COALESCE($2, name),
		    location = COALESCE($3, location),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, name, email, password_hash, location, is_verified, created_at, updated_at
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID, name, location)

	logger.Log.Infow("update user",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailExists
	}
	return err
}

// emailDomain returns the part after '@' for log context without exposing
// the full address.
func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
