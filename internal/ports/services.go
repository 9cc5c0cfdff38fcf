package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/studysync/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for user profile operations
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*entities.User, error)
	LinkGoogleAccount(ctx context.Context, id uuid.UUID, refreshToken string) error
}

// ImportService runs the feed import pipeline for one user: fetch, parse,
// extract, persist, then best-effort synchronization to the external
// calendar.
type ImportService interface {
	ImportFeed(ctx context.Context, userID uuid.UUID, req ImportRequest) (*ImportResponse, error)
}

// SyncService mirrors a class tree into the external calendar service. It
// never returns an error for individual item failures; every attempted
// item is represented in the result list exactly once.
type SyncService interface {
	SyncClasses(ctx context.Context, accessToken string, classes []entities.Class) []entities.SyncResult
	Resync(ctx context.Context, userID uuid.UUID) (*ResyncResponse, error)
}

// ClassService exposes the persisted class tree to the calendar view.
type ClassService interface {
	GetClasses(ctx context.Context, userID uuid.UUID) ([]entities.Class, error)
	SetAssignmentCompleted(ctx context.Context, userID uuid.UUID, classID, assignmentID string, completed bool) error
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
}

// User related types
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Timezone  *string `json:"timezone" validate:"omitempty,max=64"`
	FeedURL   *string `json:"feed_url" validate:"omitempty,url"`
}

type LinkGoogleRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Import related types
type ImportRequest struct {
	FeedURL string `json:"feed_url" validate:"required,url"`
}

// ImportResponse reports the outcome of one import run. SyncResults covers
// only the synchronization phase; the import itself is successful once
// extraction and persistence succeed, even when SyncSkipped is true or
// individual results failed.
type ImportResponse struct {
	ClassCount      int                   `json:"class_count"`
	AssignmentCount int                   `json:"assignment_count"`
	SyncSkipped     bool                  `json:"sync_skipped"`
	SyncResults     []entities.SyncResult `json:"sync_results"`
}

type ResyncResponse struct {
	SyncSkipped bool                  `json:"sync_skipped"`
	SyncResults []entities.SyncResult `json:"sync_results"`
}

// Common response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
