package services

import (
	"strings"
	"time"

	"github.com/studysync/core/internal/domain/entities"
)

// staleCutoff is how far back assignments are still imported. Entries whose
// start instant is strictly before now minus this window are dropped.
const staleCutoff = 7 * 24 * time.Hour

// classIcon is the placeholder glyph assigned to every extracted class.
const classIcon = "📚"

// ExtractClasses derives the class tree from a decoded feed. Classes are
// created in first-seen order and colored by a running palette index, so
// extraction over the same entries always produces the same tree apart
// from generated assignment identifiers.
func ExtractClasses(entries []entities.CalendarEntry, now time.Time) []entities.Class {
	cutoff := now.Add(-staleCutoff)

	classes := make([]entities.Class, 0)
	position := make(map[string]int)
	colorIndex := 0

	for _, entry := range entries {
		if entry.Start.Before(cutoff) {
			continue
		}

		className, assignmentName := splitClassTag(entry.Summary)

		pos, seen := position[className]
		if !seen {
			classes = append(classes, entities.Class{
				ID:    entities.ClassID(className),
				Name:  className,
				Color: entities.PaletteColor(colorIndex),
				Icon:  classIcon,
			})
			colorIndex++
			pos = len(classes) - 1
			position[className] = pos
		}

		id := entry.UID
		if id == "" {
			id = entities.NewAssignmentID()
		}

		classes[pos].Assignments = append(classes[pos].Assignments, entities.Assignment{
			ID:          id,
			Name:        assignmentName,
			DueDate:     entry.Start,
			Description: entry.Description,
			Completed:   false,
		})
	}

	return classes
}

// splitClassTag extracts the bracketed class tag from a feed summary. The
// trimmed tag becomes the class name and is stripped from the summary to
// form the assignment name. Summaries without a tag fall into the
// "Unknown Class" sentinel and are kept as-is. Matching is exact per
// trimmed string; differently cased tags are distinct classes.
func splitClassTag(summary string) (className, assignmentName string) {
	open := strings.Index(summary, "[")
	if open >= 0 {
		if rel := strings.Index(summary[open:], "]"); rel > 0 {
			tag := strings.TrimSpace(summary[open+1 : open+rel])
			if tag != "" {
				rest := strings.TrimSpace(summary[:open] + summary[open+rel+1:])
				return tag, rest
			}
		}
	}
	return entities.UnknownClassName, summary
}
