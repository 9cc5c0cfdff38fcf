package googlecal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// Reminder offsets applied to every created event: one email a day ahead,
// one pop-up an hour ahead.
const (
	emailReminderMinutes = 24 * 60
	popupReminderMinutes = 60
)

// Client creates calendars and events through the Google Calendar API,
// authenticated per call with a bearer access token.
type Client struct {
	logger *logger.Logger
}

// NewClient creates a new Google Calendar client
func NewClient(appLogger *logger.Logger) ports.CalendarProvider {
	return &Client{logger: appLogger}
}

func (c *Client) service(ctx context.Context, accessToken string) (*calendar.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	srv, err := calendar.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return srv, nil
}

// CreateCalendar creates a secondary calendar named after a class and
// returns its remote identifier.
func (c *Client) CreateCalendar(ctx context.Context, accessToken, name string) (string, error) {
	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return "", err
	}

	created, err := srv.Calendars.Insert(&calendar.Calendar{Summary: name}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar %q: %w", name, err)
	}

	c.logger.Debug("Calendar created", "name", name, "calendar_id", created.Id)
	return created.Id, nil
}

// CreateEvent creates one event in the given calendar with the standard
// reminder overrides.
func (c *Client) CreateEvent(ctx context.Context, accessToken, calendarID string, event ports.CalendarEventRequest) (string, error) {
	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return "", err
	}

	ev := &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: emailReminderMinutes},
				{Method: "popup", Minutes: popupReminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := srv.Events.Insert(calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event %q: %w", event.Title, err)
	}

	return created.Id, nil
}
