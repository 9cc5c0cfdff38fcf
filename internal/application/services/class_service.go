package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// ClassService exposes the persisted class tree to the calendar view.
type ClassService struct {
	classRepo ports.ClassRepository
	logger    *logger.Logger
}

// NewClassService creates a new class service
func NewClassService(classRepo ports.ClassRepository, appLogger *logger.Logger) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		logger:    appLogger,
	}
}

// GetClasses returns the user's current class tree. A user who never
// imported a feed gets an empty list, not an error.
func (s *ClassService) GetClasses(ctx context.Context, userID uuid.UUID) ([]entities.Class, error) {
	classes, err := s.classRepo.GetByUser(ctx, userID)
	if err != nil {
		if err == entities.ErrClassTreeNotFound {
			return []entities.Class{}, nil
		}
		return nil, fmt.Errorf("failed to load class tree: %w", err)
	}

	return classes, nil
}

// SetAssignmentCompleted toggles the completion flag on one assignment.
func (s *ClassService) SetAssignmentCompleted(ctx context.Context, userID uuid.UUID, classID, assignmentID string, completed bool) error {
	if err := s.classRepo.SetAssignmentCompleted(ctx, userID, classID, assignmentID, completed); err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	s.logger.Info("Assignment completion updated",
		"user_id", userID,
		"class_id", classID,
		"assignment_id", assignmentID,
		"completed", completed,
	)
	return nil
}
