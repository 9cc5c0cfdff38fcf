package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/core/internal/infrastructure/logger"
)

func TestGetClassesReturnsEmptyListBeforeFirstImport(t *testing.T) {
	svc := NewClassService(newFakeClassRepo(), logger.NewNop())

	classes, err := svc.GetClasses(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, classes)
	assert.Empty(t, classes)
}

func TestGetClassesReturnsPersistedTree(t *testing.T) {
	userID := uuid.New()
	repo := newFakeClassRepo()
	repo.trees[userID] = testClasses()

	svc := NewClassService(repo, logger.NewNop())

	classes, err := svc.GetClasses(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, classes, 3)
	assert.Equal(t, "Biology", classes[0].Name)
}
