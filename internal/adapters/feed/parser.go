package feed

import (
	"bytes"
	"fmt"

	ical "github.com/arran4/golang-ical"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// Parser decodes ICS feed documents into calendar entries.
type Parser struct {
	logger *logger.Logger
}

// NewParser creates a new feed parser
func NewParser(appLogger *logger.Logger) ports.FeedParser {
	return &Parser{logger: appLogger}
}

// Parse decodes an ICS payload into calendar entries. A structurally
// invalid document fails with entities.ErrFeedMalformed; there is no
// line-by-line recovery. Events without a usable DTSTART are skipped,
// missing descriptions are tolerated.
func (p *Parser) Parse(body []byte) ([]entities.CalendarEntry, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty document", entities.ErrFeedMalformed)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		p.logger.Warn("Feed parse failed", "error", err)
		return nil, fmt.Errorf("%w: %v", entities.ErrFeedMalformed, err)
	}

	events := cal.Events()
	entries := make([]entities.CalendarEntry, 0, len(events))

	for _, ve := range events {
		start, err := ve.GetStartAt()
		if err != nil || start.IsZero() {
			continue
		}

		var entry entities.CalendarEntry
		entry.Start = start

		if prop := ve.GetProperty(ical.ComponentPropertyUniqueId); prop != nil {
			entry.UID = prop.Value
		}
		if prop := ve.GetProperty(ical.ComponentPropertySummary); prop != nil {
			entry.Summary = prop.Value
		}
		if prop := ve.GetProperty(ical.ComponentPropertyDescription); prop != nil {
			entry.Description = prop.Value
		}

		entries = append(entries, entry)
	}

	p.logger.Debug("Feed parsed", "entries", len(entries))
	return entries, nil
}
