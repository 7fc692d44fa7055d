package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/repositories"
)

// Error variables
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, name, email, passwordHash string, location *string) (*models.UserDB, error)
	Update(ctx context.Context, userID uuid.UUID, name, location *string) (*models.UserDB, error)
}

// TokenIssuer issues and validates access/refresh token pairs.
type TokenIssuer interface {
	GeneratePair(ctx context.Context, userID uuid.UUID) (access string, refresh string, err error)
	ParseRefresh(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// TokenPair holds a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	reader     UserReader
	writer     UserWriter
	tokens     TokenIssuer
	bcryptCost int
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &AuthService{
		reader:     reader,
		writer:     writer,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account with its reputation, credit balance, and
// social stats records, then issues a token pair. The payload must already
// have passed validation.
func (svc *AuthService) Register(ctx context.Context, name, email, password string, location *string) (*models.UserDB, *TokenPair, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check existing user", "err", err)
		return nil, nil, err
	}
	if existing != nil {
		logger.Log.Infow("registration rejected, email taken")
		return nil, nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), svc.bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, nil, err
	}

	user, err := svc.writer.Create(ctx, name, email, string(hashedPassword), location)
	if err != nil {
		// The unique constraint catches registrations that raced past the
		// precheck.
		if errors.Is(err, repositories.ErrEmailExists) {
			logger.Log.Infow("registration rejected, email taken at constraint")
			return nil, nil, ErrEmailTaken
		}
		logger.Log.Errorw("failed to create user", "err", err)
		return nil, nil, err
	}

	access, refresh, err := svc.tokens.GeneratePair(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate tokens", "err", err)
		return nil, nil, err
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Login authenticates a user by email and password and issues a token pair.
// Unknown email and wrong password produce the same error.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.UserDB, *TokenPair, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, nil, err
	}
	if user == nil {
		logger.Log.Infow("login rejected, unknown email")
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("login rejected, password mismatch", "user_id", user.UserID)
		return nil, nil, ErrInvalidCredentials
	}

	access, refresh, err := svc.tokens.GeneratePair(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate tokens", "err", err)
		return nil, nil, err
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh token and issues a fresh token pair.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := svc.tokens.ParseRefresh(ctx, refreshToken)
	if err != nil {
		logger.Log.Infow("refresh rejected, invalid token")
		return nil, ErrInvalidRefreshToken
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("refresh rejected, user gone", "user_id", userID)
		return nil, ErrInvalidRefreshToken
	}

	access, refresh, err := svc.tokens.GeneratePair(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate tokens", "err", err)
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
