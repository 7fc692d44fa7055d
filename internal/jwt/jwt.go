package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT issues and validates signed access and refresh tokens.
// Access and refresh tokens are signed with distinct secrets so that a
// leaked refresh secret cannot forge access tokens.
type JWT struct {
	accessSecret  string
	refreshSecret string
	accessExp     time.Duration
	refreshExp    time.Duration
}

// New creates a new JWT instance.
func New(accessSecret, refreshSecret string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExp:     accessExp,
		refreshExp:    refreshExp,
	}
}

// GenerateAccess creates a short-lived access token carrying the user id.
func (j *JWT) GenerateAccess(ctx context.Context, userID uuid.UUID) (string, error) {
	return generate(userID, j.accessSecret, j.accessExp)
}

// GenerateRefresh creates a longer-lived refresh token carrying the user id.
func (j *JWT) GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error) {
	return generate(userID, j.refreshSecret, j.refreshExp)
}

// GeneratePair issues an access and a refresh token for the same user.
func (j *JWT) GeneratePair(ctx context.Context, userID uuid.UUID) (access string, refresh string, err error) {
	access, err = j.GenerateAccess(ctx, userID)
	if err != nil {
		return "", "", err
	}
	refresh, err = j.GenerateRefresh(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func generate(userID uuid.UUID, secret string, exp time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(exp).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccess validates an access token and returns the user id claim.
func (j *JWT) ParseAccess(ctx context.Context, tokenString string) (uuid.UUID, error) {
	return parse(tokenString, j.accessSecret)
}

// ParseRefresh validates a refresh token and returns the user id claim.
func (j *JWT) ParseRefresh(ctx context.Context, tokenString string) (uuid.UUID, error) {
	return parse(tokenString, j.refreshSecret)
}

func parse(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if userIDStr, ok := claims["user_id"].(string); ok {
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				return uuid.Nil, errors.New("invalid user_id format")
			}
			return userID, nil
		}
		return uuid.Nil, errors.New("user_id not found in token")
	}
	return uuid.Nil, errors.New("invalid token")
}

// GetTokenFromRequest extracts the token string from the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
