package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	ParseAccess(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// AuthMiddleware returns a middleware that validates the access token and
// stores the authenticated user id in the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			userID, err := tokener.ParseAccess(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserIDToContext(ctx, userID)))
		})
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var userIDKey = contextKey{}

// SetUserIDToContext stores the authenticated user id in the context.
func SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user id from the context.
// Returns uuid.Nil if not present.
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	userID, _ := ctx.Value(userIDKey).(uuid.UUID)
	return userID
}
