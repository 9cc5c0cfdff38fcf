package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/config"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// eventWindow is the length of the calendar slot created for an
// assignment; the slot ends exactly at the due instant.
const eventWindow = 60 * time.Minute

// SyncService mirrors extracted class trees into the external calendar as
// one calendar per class plus one event per assignment. Item failures are
// recorded, never propagated; a batch always runs to completion.
type SyncService struct {
	provider   ports.CalendarProvider
	exchanger  ports.TokenExchanger
	userRepo   ports.UserRepository
	classRepo  ports.ClassRepository
	cfg        config.SyncConfig
	logger     *logger.Logger
	itemsTotal *prometheus.CounterVec
}

// NewSyncService creates a new sync service. itemsTotal may be nil when
// metrics are disabled.
func NewSyncService(
	provider ports.CalendarProvider,
	exchanger ports.TokenExchanger,
	userRepo ports.UserRepository,
	classRepo ports.ClassRepository,
	cfg config.SyncConfig,
	appLogger *logger.Logger,
	itemsTotal *prometheus.CounterVec,
) *SyncService {
	return &SyncService{
		provider:   provider,
		exchanger:  exchanger,
		userRepo:   userRepo,
		classRepo:  classRepo,
		cfg:        cfg,
		logger:     appLogger,
		itemsTotal: itemsTotal,
	}
}

// SyncClasses creates one remote calendar per class and one remote event
// per assignment. Classes fan out across a bounded worker pool; within a
// class, events are created sequentially after the calendar call succeeds.
// The returned list holds exactly one result per attempted item,
// regardless of how many fail.
func (s *SyncService) SyncClasses(ctx context.Context, accessToken string, classes []entities.Class) []entities.SyncResult {
	results := make([]entities.SyncResult, 0, len(classes)+entities.AssignmentCount(classes))
	if len(classes) == 0 {
		return results
	}

	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, workers)
	)

	for _, class := range classes {
		class := class
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			classResults := s.syncClass(ctx, accessToken, class)

			mu.Lock()
			results = append(results, classResults...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return results
}

// syncClass handles one class: calendar creation first, then its events in
// feed order. A failed calendar creation skips the class's assignments
// entirely; a failed event only skips itself.
func (s *SyncService) syncClass(ctx context.Context, accessToken string, class entities.Class) []entities.SyncResult {
	out := make([]entities.SyncResult, 0, len(class.Assignments)+1)

	calendarID, err := s.provider.CreateCalendar(ctx, accessToken, class.Name)
	if err != nil {
		s.logger.LogSyncItem(class.Name, "", err)
		s.countItem(entities.SyncStatusFailed)
		out = append(out, entities.SyncResult{
			ClassName: class.Name,
			Status:    entities.SyncStatusFailed,
			Error:     err.Error(),
		})
		return out
	}

	s.logger.LogSyncItem(class.Name, "", nil)
	s.countItem(entities.SyncStatusCreated)
	out = append(out, entities.SyncResult{
		ClassName: class.Name,
		Status:    entities.SyncStatusCreated,
	})

	for _, assignment := range class.Assignments {
		event := ports.CalendarEventRequest{
			Title:       assignment.Name,
			Description: assignment.Description,
			Start:       assignment.DueDate.Add(-eventWindow),
			End:         assignment.DueDate,
		}

		_, err := s.provider.CreateEvent(ctx, accessToken, calendarID, event)
		s.logger.LogSyncItem(class.Name, assignment.Name, err)

		result := entities.SyncResult{
			ClassName:      class.Name,
			AssignmentName: assignment.Name,
			Status:         entities.SyncStatusCreated,
		}
		if err != nil {
			result.Status = entities.SyncStatusFailed
			result.Error = err.Error()
		}
		s.countItem(result.Status)
		out = append(out, result)
	}

	return out
}

// Resync re-runs the synchronization phase from the persisted class tree.
// It is the recovery path when a previous import persisted classes but the
// remote mirroring did not complete.
func (s *SyncService) Resync(ctx context.Context, userID uuid.UUID) (*ports.ResyncResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.GoogleRefreshToken == nil || *user.GoogleRefreshToken == "" {
		return nil, entities.ErrNoGoogleAccount
	}

	classes, err := s.classRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.exchanger.Exchange(ctx, *user.GoogleRefreshToken)
	if err != nil {
		s.logger.Warn("Resync skipped, token exchange failed", "error", err, "user_id", userID)
		return &ports.ResyncResponse{
			SyncSkipped: true,
			SyncResults: []entities.SyncResult{},
		}, nil
	}

	results := s.SyncClasses(ctx, accessToken, classes)
	return &ports.ResyncResponse{SyncResults: results}, nil
}

func (s *SyncService) countItem(status entities.SyncStatus) {
	if s.itemsTotal != nil {
		s.itemsTotal.WithLabelValues(string(status)).Inc()
	}
}
