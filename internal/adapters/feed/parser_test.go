package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/logger"
)

func icsDocument(events ...string) []byte {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//school//calendar//EN\r\n")
	for _, ev := range events {
		b.WriteString(ev)
	}
	b.WriteString("END:VCALENDAR\r\n")
	return []byte(b.String())
}

func icsEvent(uid, summary, description, dtstart string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VEVENT\r\n")
	if uid != "" {
		b.WriteString("UID:" + uid + "\r\n")
	}
	if summary != "" {
		b.WriteString("SUMMARY:" + summary + "\r\n")
	}
	if description != "" {
		b.WriteString("DESCRIPTION:" + description + "\r\n")
	}
	if dtstart != "" {
		b.WriteString("DTSTART:" + dtstart + "\r\n")
	}
	b.WriteString("END:VEVENT\r\n")
	return b.String()
}

func TestParseExtractsEntries(t *testing.T) {
	doc := icsDocument(
		icsEvent("uid-1", "[Biology] Lab report", "Bring goggles", "20240320T090000Z"),
		icsEvent("uid-2", "[Math] Problem set", "", "20240321T170000Z"),
	)

	p := NewParser(logger.NewNop())

	entries, err := p.Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "uid-1", entries[0].UID)
	assert.Equal(t, "[Biology] Lab report", entries[0].Summary)
	assert.Equal(t, "Bring goggles", entries[0].Description)
	assert.Equal(t, time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC), entries[0].Start.UTC())

	assert.Equal(t, "uid-2", entries[1].UID)
	assert.Empty(t, entries[1].Description)
}

func TestParseSkipsEventsWithoutStart(t *testing.T) {
	doc := icsDocument(
		icsEvent("uid-1", "No due date here", "", ""),
		icsEvent("uid-2", "[Math] Problem set", "", "20240321T170000Z"),
	)

	p := NewParser(logger.NewNop())

	entries, err := p.Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "uid-2", entries[0].UID)
}

func TestParseEmptyBodyIsMalformed(t *testing.T) {
	p := NewParser(logger.NewNop())

	_, err := p.Parse(nil)
	assert.ErrorIs(t, err, entities.ErrFeedMalformed)

	_, err = p.Parse([]byte{})
	assert.ErrorIs(t, err, entities.ErrFeedMalformed)
}

func TestParseGarbageIsMalformed(t *testing.T) {
	p := NewParser(logger.NewNop())

	_, err := p.Parse([]byte("<html>this is not a calendar</html>"))
	assert.ErrorIs(t, err, entities.ErrFeedMalformed)
}

func TestParseCalendarWithoutEvents(t *testing.T) {
	p := NewParser(logger.NewNop())

	entries, err := p.Parse(icsDocument())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
