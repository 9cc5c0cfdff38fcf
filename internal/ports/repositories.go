package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/studysync/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SetFeedURL(ctx context.Context, id uuid.UUID, feedURL string) error
	SetGoogleRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ClassRepository is the persistence gateway for extracted class trees.
// Replace stores the whole tree against the user record; the previous tree
// is discarded, never merged.
type ClassRepository interface {
	Replace(ctx context.Context, userID uuid.UUID, classes []entities.Class) error
	GetByUser(ctx context.Context, userID uuid.UUID) ([]entities.Class, error)
	SetAssignmentCompleted(ctx context.Context, userID uuid.UUID, classID, assignmentID string, completed bool) error
}

// AuthRepository defines the interface for session refresh token operations
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// RefreshToken represents a session refresh token record
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
