package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/ports"
)

// ClassRepositoryImpl stores each user's class tree as a single JSONB
// document. An import replaces the whole document; there is no merge with
// the previous tree.
type ClassRepositoryImpl struct {
	db *sqlx.DB
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *sqlx.DB) ports.ClassRepository {
	return &ClassRepositoryImpl{db: db}
}

func (r *ClassRepositoryImpl) Replace(ctx context.Context, userID uuid.UUID, classes []entities.Class) error {
	if classes == nil {
		classes = []entities.Class{}
	}

	payload, err := json.Marshal(classes)
	if err != nil {
		return fmt.Errorf("marshal class tree: %w", err)
	}

	query := `
		INSERT INTO class_trees (user_id, classes, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET classes = EXCLUDED.classes, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, userID, payload); err != nil {
		return fmt.Errorf("replace class tree: %w", err)
	}

	return nil
}

func (r *ClassRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]entities.Class, error) {
	query := `SELECT classes FROM class_trees WHERE user_id = $1`

	var payload []byte
	err := r.db.GetContext(ctx, &payload, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrClassTreeNotFound
		}
		return nil, fmt.Errorf("get class tree: %w", err)
	}

	var classes []entities.Class
	if err := json.Unmarshal(payload, &classes); err != nil {
		return nil, fmt.Errorf("unmarshal class tree: %w", err)
	}

	return classes, nil
}

func (r *ClassRepositoryImpl) SetAssignmentCompleted(ctx context.Context, userID uuid.UUID, classID, assignmentID string, completed bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var payload []byte
	err = tx.GetContext(ctx, &payload, `SELECT classes FROM class_trees WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrClassTreeNotFound
		}
		return fmt.Errorf("get class tree: %w", err)
	}

	var classes []entities.Class
	if err := json.Unmarshal(payload, &classes); err != nil {
		return fmt.Errorf("unmarshal class tree: %w", err)
	}

	found := false
	for ci := range classes {
		if classes[ci].ID != classID {
			continue
		}
		for ai := range classes[ci].Assignments {
			if classes[ci].Assignments[ai].ID == assignmentID {
				classes[ci].Assignments[ai].Completed = completed
				found = true
				break
			}
		}
		break
	}

	if !found {
		return fmt.Errorf("assignment %s not found in class %s", assignmentID, classID)
	}

	updated, err := json.Marshal(classes)
	if err != nil {
		return fmt.Errorf("marshal class tree: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE class_trees SET classes = $2, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1`,
		userID, updated,
	)
	if err != nil {
		return fmt.Errorf("update class tree: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
