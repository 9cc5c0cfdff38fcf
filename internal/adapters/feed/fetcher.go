package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// Fetcher retrieves raw calendar feed documents over HTTP. One GET per
// call, no redirects beyond the client default, no retries.
type Fetcher struct {
	client *http.Client
	logger *logger.Logger
}

// NewFetcher creates a new feed fetcher
func NewFetcher(timeout time.Duration, appLogger *logger.Logger) ports.FeedFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: appLogger,
	}
}

// Fetch performs a single GET of the feed URL. Network-level failures map
// to entities.ErrFeedUnreachable, non-2xx responses to
// entities.ErrFeedRejected. Both abort the whole import.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrFeedUnreachable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("Feed fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %v", entities.ErrFeedUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("Feed fetch rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", entities.ErrFeedRejected, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrFeedUnreachable, err)
	}

	f.logger.Debug("Feed fetched", "bytes", len(body))
	return body, nil
}
