package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// UserService handles user profile operations
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, appLogger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   appLogger,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateUser updates a user's profile fields
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req ports.UpdateUserRequest) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}
	if req.FeedURL != nil {
		user.FeedURL = req.FeedURL
	}

	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User updated successfully", "user_id", user.ID)

	user.PasswordHash = ""
	return user, nil
}

// LinkGoogleAccount stores the Google OAuth refresh token that the import
// pipeline later exchanges for access tokens.
func (s *UserService) LinkGoogleAccount(ctx context.Context, id uuid.UUID, refreshToken string) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if err := s.userRepo.SetGoogleRefreshToken(ctx, id, refreshToken); err != nil {
		return fmt.Errorf("failed to store google refresh token: %w", err)
	}

	s.logger.Info("Google account linked", "user_id", id)
	return nil
}
