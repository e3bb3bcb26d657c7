package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTags_KeywordMatches(t *testing.T) {
	tags := ContentTags("Cosmic Odyssey", "A journey through space and time")

	assert.Contains(t, tags, "Sci-Fi")
	assert.Contains(t, tags, "Adventure")
	assert.Len(t, tags, 3)
	// Padded with the first generic fallback only.
	assert.Contains(t, tags, "Entertainment")
}

func TestContentTags_NoMatchesFallsBack(t *testing.T) {
	tags := ContentTags("Untitled", "Nothing descriptive here")

	assert.Equal(t, []string{"Entertainment", "Trending", "Featured"}, tags)
}

func TestContentTags_EnoughMatchesNoPadding(t *testing.T) {
	tags := ContentTags("A funny love song", "A scary journey through space")

	assert.GreaterOrEqual(t, len(tags), 3)
	assert.NotContains(t, tags, "Entertainment")
	assert.NotContains(t, tags, "Trending")
	assert.NotContains(t, tags, "Featured")
}

func TestContentTags_CaseInsensitive(t *testing.T) {
	tags := ContentTags("SPACE RACE", "")

	assert.Contains(t, tags, "Sci-Fi")
}

func TestContentTags_KeywordOrderFixed(t *testing.T) {
	// Rules are evaluated in table order regardless of keyword position.
	tags := ContentTags("music in space on a journey", "")

	assert.Equal(t, []string{"Adventure", "Sci-Fi", "Music"}, tags)
}
