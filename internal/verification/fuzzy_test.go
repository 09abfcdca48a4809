package verification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"Senior Software Engineer", []string{"Senior", "Software", "Engineer"}},
		{"Acme, Inc.", []string{"Acme", "Inc"}},
		{"  increased   revenue 30% ", []string{"increased", "revenue", "30%"}},
		{"(MBA)", []string{"MBA"}},
		{" ... ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.value))
		})
	}
}

func TestWindows(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][2]int
	}{
		{"empty", "", [][2]int{{0, 0}}},
		{"shorter than window", "abc", [][2]int{{0, 3}}},
		{"exactly one window", strings.Repeat("a", 50), [][2]int{{0, 50}}},
		{"two windows", strings.Repeat("a", 60), [][2]int{{0, 50}, {25, 60}}},
		{"three windows", strings.Repeat("a", 100), [][2]int{{0, 50}, {25, 75}, {50, 100}}},
		{"multibyte runes", strings.Repeat("é", 60), [][2]int{{0, 100}, {50, 120}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, windows(tt.text, 50, 25))
		})
	}
}

func TestFirstWindow(t *testing.T) {
	tokens := []string{"Senior", "Software", "Engineer"}

	match, ok := firstWindow(tokens, "Senior Engineer (Software)", 50, 25, 0.7)
	assert.True(t, ok)
	assert.Equal(t, 1.0, match.ratio)
	assert.Equal(t, "Senior Engineer (Software", match.text)

	_, ok = firstWindow(tokens, "Senior Architect", 50, 25, 0.7)
	assert.False(t, ok)

	match, ok = firstWindow(tokens, "Senior Architect", 50, 25, 0.3)
	assert.True(t, ok)
	assert.Equal(t, "Senior", match.text)

	_, ok = firstWindow(nil, "anything", 50, 25, 0.7)
	assert.False(t, ok)
}

func TestFirstWindow_StopsAtFirstQualifyingWindow(t *testing.T) {
	tokens := []string{"Senior", "Staff", "Software", "Engineer"}
	candidate := "Senior Staff Engineer role" + strings.Repeat(".", 80) + "Senior Staff Software-Engineer"

	match, ok := firstWindow(tokens, candidate, 50, 25, 0.7)
	require.True(t, ok)
	assert.Equal(t, 0.75, match.ratio, "a later window scoring 1.0 does not replace it")
	assert.Equal(t, "Senior Staff Engineer", match.text)
}
