package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/core/internal/domain/entities"
)

var extractNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func entry(summary string, start time.Time) entities.CalendarEntry {
	return entities.CalendarEntry{Summary: summary, Start: start}
}

func TestExtractClassesGroupsByTag(t *testing.T) {
	entries := []entities.CalendarEntry{
		entry("[Biology] Lab report", extractNow.Add(24*time.Hour)),
		entry("[Math] Problem set 4", extractNow.Add(48*time.Hour)),
		entry("[Biology] Reading quiz", extractNow.Add(72*time.Hour)),
	}

	classes := ExtractClasses(entries, extractNow)

	require.Len(t, classes, 2)
	assert.Equal(t, "Biology", classes[0].Name)
	assert.Equal(t, "Math", classes[1].Name)
	assert.Len(t, classes[0].Assignments, 2)
	assert.Len(t, classes[1].Assignments, 1)

	assert.Equal(t, "Lab report", classes[0].Assignments[0].Name)
	assert.Equal(t, "Reading quiz", classes[0].Assignments[1].Name)
	assert.Equal(t, "Problem set 4", classes[1].Assignments[0].Name)
}

func TestExtractClassesUntaggedEntriesFallIntoUnknownClass(t *testing.T) {
	entries := []entities.CalendarEntry{
		entry("Orientation meeting", extractNow.Add(time.Hour)),
		entry("[Biology] Lab report", extractNow.Add(2*time.Hour)),
		entry("Campus tour", extractNow.Add(3*time.Hour)),
	}

	classes := ExtractClasses(entries, extractNow)

	require.Len(t, classes, 2)
	assert.Equal(t, entities.UnknownClassName, classes[0].Name)
	require.Len(t, classes[0].Assignments, 2)

	// untagged summaries are kept unmodified
	assert.Equal(t, "Orientation meeting", classes[0].Assignments[0].Name)
	assert.Equal(t, "Campus tour", classes[0].Assignments[1].Name)
}

func TestExtractClassesDropsStaleEntries(t *testing.T) {
	cutoff := extractNow.Add(-7 * 24 * time.Hour)

	entries := []entities.CalendarEntry{
		entry("[Old] Ancient homework", cutoff.Add(-time.Second)),
		entry("[Edge] Exactly at cutoff", cutoff),
		entry("[Fresh] Due soon", extractNow.Add(time.Hour)),
	}

	classes := ExtractClasses(entries, extractNow)

	require.Len(t, classes, 2)
	assert.Equal(t, "Edge", classes[0].Name)
	assert.Equal(t, "Fresh", classes[1].Name)
}

func TestExtractClassesTagMatchingIsCaseSensitive(t *testing.T) {
	entries := []entities.CalendarEntry{
		entry("[Biology] One", extractNow.Add(time.Hour)),
		entry("[biology] Two", extractNow.Add(2*time.Hour)),
	}

	classes := ExtractClasses(entries, extractNow)

	require.Len(t, classes, 2)
	assert.Equal(t, "Biology", classes[0].Name)
	assert.Equal(t, "biology", classes[1].Name)
}

func TestExtractClassesColorsFollowFirstSeenOrder(t *testing.T) {
	entries := []entities.CalendarEntry{
		entry("[A] x", extractNow.Add(time.Hour)),
		entry("[B] y", extractNow.Add(time.Hour)),
		entry("[A] z", extractNow.Add(time.Hour)),
		entry("[C] w", extractNow.Add(time.Hour)),
	}

	classes := ExtractClasses(entries, extractNow)

	require.Len(t, classes, 3)
	assert.Equal(t, entities.PaletteColor(0), classes[0].Color)
	assert.Equal(t, entities.PaletteColor(1), classes[1].Color)
	assert.Equal(t, entities.PaletteColor(2), classes[2].Color)
}

func TestExtractClassesIsDeterministicApartFromGeneratedIDs(t *testing.T) {
	entries := []entities.CalendarEntry{
		{UID: "uid-1", Summary: "[Biology] Lab report", Start: extractNow.Add(time.Hour)},
		{UID: "uid-2", Summary: "[Math] Problem set", Start: extractNow.Add(2 * time.Hour)},
	}

	first := ExtractClasses(entries, extractNow)
	second := ExtractClasses(entries, extractNow)

	assert.Equal(t, first, second)
}

func TestExtractClassesUsesFeedUIDWhenPresent(t *testing.T) {
	entries := []entities.CalendarEntry{
		{UID: "uid-42", Summary: "[Biology] Lab", Start: extractNow.Add(time.Hour)},
		{Summary: "[Biology] Quiz", Start: extractNow.Add(2 * time.Hour)},
	}

	classes := ExtractClasses(entries, extractNow)

	require.Len(t, classes, 1)
	require.Len(t, classes[0].Assignments, 2)
	assert.Equal(t, "uid-42", classes[0].Assignments[0].ID)
	assert.NotEmpty(t, classes[0].Assignments[1].ID)
}

func TestSplitClassTag(t *testing.T) {
	cases := []struct {
		name           string
		summary        string
		wantClass      string
		wantAssignment string
	}{
		{"plain tag", "[Biology] Lab report", "Biology", "Lab report"},
		{"tag with inner spaces", "[ Biology ] Lab report", "Biology", "Lab report"},
		{"only first pair used", "[Math] homework [late]", "Math", "homework [late]"},
		{"no tag", "Orientation meeting", entities.UnknownClassName, "Orientation meeting"},
		{"empty tag", "[] Something", entities.UnknownClassName, "[] Something"},
		{"blank tag", "[   ] Something", entities.UnknownClassName, "[   ] Something"},
		{"unclosed bracket", "[Biology lab report", entities.UnknownClassName, "[Biology lab report"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			class, assignment := splitClassTag(tc.summary)
			assert.Equal(t, tc.wantClass, class)
			assert.Equal(t, tc.wantAssignment, assignment)
		})
	}
}
