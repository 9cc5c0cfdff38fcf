package ports

import (
	"context"
	"time"

	"github.com/studysync/core/internal/domain/entities"
)

// FeedFetcher retrieves a raw calendar feed document from a user-supplied
// URL. Implementations perform a single GET with no retry logic; network
// failures map to entities.ErrFeedUnreachable and non-2xx responses to
// entities.ErrFeedRejected.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FeedParser decodes a raw feed document into calendar entries. A
// structurally invalid document yields entities.ErrFeedMalformed.
type FeedParser interface {
	Parse(body []byte) ([]entities.CalendarEntry, error)
}

// TokenExchanger trades a long-lived provider refresh token for a
// short-lived access token. A failed exchange returns an error; callers
// treat it as "synchronization unavailable", never as an import failure.
type TokenExchanger interface {
	Exchange(ctx context.Context, refreshToken string) (string, error)
}

// CalendarEventRequest describes one remote event to create.
type CalendarEventRequest struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// CalendarProvider creates calendars and events in the external calendar
// service on behalf of a user, authenticated with a bearer access token.
type CalendarProvider interface {
	CreateCalendar(ctx context.Context, accessToken, name string) (string, error)
	CreateEvent(ctx context.Context, accessToken, calendarID string, event CalendarEventRequest) (string, error)
}
