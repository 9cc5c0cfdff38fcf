package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/config"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// ImportService runs the feed import pipeline: fetch, parse, extract,
// persist, then best-effort synchronization into the external calendar.
// The persistence write and the synchronization phase are independent; a
// sync failure never rolls back persisted classes.
type ImportService struct {
	fetcher      ports.FeedFetcher
	parser       ports.FeedParser
	exchanger    ports.TokenExchanger
	sync         *SyncService
	userRepo     ports.UserRepository
	classRepo    ports.ClassRepository
	cache        ports.CacheRepository
	feedCfg      config.FeedConfig
	syncCfg      config.SyncConfig
	logger       *logger.Logger
	importsTotal *prometheus.CounterVec
	now          func() time.Time
}

// NewImportService creates a new import service. cache and importsTotal
// may be nil when Redis or metrics are unavailable.
func NewImportService(
	fetcher ports.FeedFetcher,
	parser ports.FeedParser,
	exchanger ports.TokenExchanger,
	syncService *SyncService,
	userRepo ports.UserRepository,
	classRepo ports.ClassRepository,
	cache ports.CacheRepository,
	feedCfg config.FeedConfig,
	syncCfg config.SyncConfig,
	appLogger *logger.Logger,
	importsTotal *prometheus.CounterVec,
) *ImportService {
	return &ImportService{
		fetcher:      fetcher,
		parser:       parser,
		exchanger:    exchanger,
		sync:         syncService,
		userRepo:     userRepo,
		classRepo:    classRepo,
		cache:        cache,
		feedCfg:      feedCfg,
		syncCfg:      syncCfg,
		logger:       appLogger,
		importsTotal: importsTotal,
		now:          time.Now,
	}
}

// ImportFeed imports the user's assignment feed. The import succeeds once
// extraction and persistence succeed; credential and per-item sync
// failures are reported in the response without failing the call.
func (s *ImportService) ImportFeed(ctx context.Context, userID uuid.UUID, req ports.ImportRequest) (*ports.ImportResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := s.fetchFeed(ctx, req.FeedURL)
	if err != nil {
		s.countImport("feed_error")
		return nil, err
	}

	entries, err := s.parser.Parse(body)
	if err != nil {
		s.countImport("feed_error")
		return nil, err
	}

	classes := ExtractClasses(entries, s.now())

	if err := s.classRepo.Replace(ctx, userID, classes); err != nil {
		s.countImport("store_error")
		return nil, fmt.Errorf("persist class tree: %w", err)
	}

	// Remember the feed URL for later re-imports; not worth failing the
	// import over.
	if err := s.userRepo.SetFeedURL(ctx, userID, req.FeedURL); err != nil {
		s.logger.Warn("Failed to store feed URL", "error", err, "user_id", userID)
	}

	resp := &ports.ImportResponse{
		ClassCount:      len(classes),
		AssignmentCount: entities.AssignmentCount(classes),
		SyncResults:     []entities.SyncResult{},
	}

	s.countImport("success")

	if !s.syncCfg.Enabled || user.GoogleRefreshToken == nil || *user.GoogleRefreshToken == "" {
		resp.SyncSkipped = true
		s.logger.LogImportOutcome(userID.String(), resp.ClassCount, resp.AssignmentCount, 0, true)
		return resp, nil
	}

	accessToken, err := s.exchanger.Exchange(ctx, *user.GoogleRefreshToken)
	if err != nil {
		// Credential-soft: the extraction and persistence already
		// succeeded, only the mirroring is unavailable.
		resp.SyncSkipped = true
		s.logger.Warn("Sync skipped, token exchange failed", "error", err, "user_id", userID)
		s.logger.LogImportOutcome(userID.String(), resp.ClassCount, resp.AssignmentCount, 0, true)
		return resp, nil
	}

	resp.SyncResults = s.sync.SyncClasses(ctx, accessToken, classes)

	failures := 0
	for _, r := range resp.SyncResults {
		if r.Status == entities.SyncStatusFailed {
			failures++
		}
	}
	s.logger.LogImportOutcome(userID.String(), resp.ClassCount, resp.AssignmentCount, failures, false)

	return resp, nil
}

// fetchFeed returns the raw feed body, consulting the Redis cache first.
// Cache errors are treated as misses; a cache write failure is logged and
// otherwise ignored.
func (s *ImportService) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	key := feedCacheKey(url)

	if s.cache != nil {
		if body, err := s.cache.Get(ctx, key); err == nil && len(body) > 0 {
			s.logger.Debug("Feed served from cache", "key", key)
			return body, nil
		}
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.feedCfg.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, body, s.feedCfg.CacheTTL); err != nil {
			s.logger.Warn("Feed cache write failed", "error", err, "key", key)
		}
	}

	return body, nil
}

func (s *ImportService) countImport(outcome string) {
	if s.importsTotal != nil {
		s.importsTotal.WithLabelValues(outcome).Inc()
	}
}

func feedCacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "feed:" + hex.EncodeToString(sum[:8])
}
