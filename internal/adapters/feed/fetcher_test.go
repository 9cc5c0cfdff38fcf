package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/logger"
)

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, logger.NewNop())

	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")
}

func TestFetchNonSuccessStatusIsRejected(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		f := NewFetcher(5*time.Second, logger.NewNop())
		_, err := f.Fetch(context.Background(), srv.URL)
		assert.ErrorIs(t, err, entities.ErrFeedRejected, "status %d", status)

		srv.Close()
	}
}

func TestFetchNetworkErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	f := NewFetcher(time.Second, logger.NewNop())
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, entities.ErrFeedUnreachable)
}

func TestFetchInvalidURLIsUnreachable(t *testing.T) {
	f := NewFetcher(time.Second, logger.NewNop())
	_, err := f.Fetch(context.Background(), "://not-a-url")
	assert.ErrorIs(t, err, entities.ErrFeedUnreachable)
}
