package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Biology", "biology"},
		{"spaces", "Advanced Math 101", "advanced-math-101"},
		{"punctuation", "CS: Algorithms & Data!", "cs-algorithms-data"},
		{"surrounding whitespace", "  History  ", "history"},
		{"unknown sentinel", UnknownClassName, "unknown-class"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassID(tc.in))
		})
	}
}

func TestClassIDIsIdempotentOverCase(t *testing.T) {
	assert.Equal(t, ClassID("BIOLOGY"), ClassID("biology"))
	assert.Equal(t, ClassID("Advanced Math"), ClassID("advanced   math"))
}

func TestPaletteColorWrapsAround(t *testing.T) {
	size := PaletteSize()
	assert.Greater(t, size, 0)

	for i := 0; i < size; i++ {
		assert.Equal(t, PaletteColor(i), PaletteColor(i+size), "index %d should wrap", i)
	}
}

func TestPaletteColorsAreDistinctWithinOneCycle(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < PaletteSize(); i++ {
		color := PaletteColor(i)
		assert.False(t, seen[color], "duplicate color %s at index %d", color, i)
		seen[color] = true
	}
}

func TestAssignmentCount(t *testing.T) {
	classes := []Class{
		{Name: "A", Assignments: []Assignment{{}, {}}},
		{Name: "B"},
		{Name: "C", Assignments: []Assignment{{}}},
	}

	assert.Equal(t, 3, AssignmentCount(classes))
	assert.Equal(t, 0, AssignmentCount(nil))
}
