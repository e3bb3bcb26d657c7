package service

import (
	"math"
	"sort"

	"streamx-recommendation-service/internal/models"
)

// Scoring weights. These are fixed design constants, not runtime tunables.
const (
	genreMatchPoints   = 10.0
	creatorMatchPoints = 15.0
	lengthMatchPoints  = 5.0
	popularityWeight   = 2.0

	sameCategoryPoints = 10.0
	genreOverlapPoints = 15.0
	sameCreatorPoints  = 20.0

	durationMaxPoints     = 10
	durationDecayStepSecs = 600
)

// Content length bucket boundaries in seconds.
const (
	shortMaxSecs  = 1800
	mediumMaxSecs = 5400
)

// scoredContent pairs a candidate with its score for one ranking pass.
type scoredContent struct {
	content models.Content
	score   float64
}

// lengthBucket classifies a duration into a content length preference bucket.
func lengthBucket(durationSecs int) models.ContentLength {
	switch {
	case durationSecs < shortMaxSecs:
		return models.LengthShort
	case durationSecs < mediumMaxSecs:
		return models.LengthMedium
	default:
		return models.LengthLong
	}
}

// personalizedScore assigns a relevance score to a candidate against a user's
// preference profile. Missing optional fields contribute 0; the result is
// never negative.
func personalizedScore(c *models.Content, pref *models.UserPreference) float64 {
	var score float64

	prefGenres := make(map[string]bool, len(pref.PreferredGenres))
	for _, g := range pref.PreferredGenres {
		prefGenres[g] = true
	}
	for _, g := range c.GenreList() {
		if prefGenres[g] {
			score += genreMatchPoints
		}
	}

	if c.CreatorID != "" {
		for _, id := range pref.PreferredCreators {
			if id == c.CreatorID {
				score += creatorMatchPoints
				break
			}
		}
	}

	if c.DurationSeconds > 0 && lengthBucket(c.DurationSeconds) == pref.ContentLengthPref {
		score += lengthMatchPoints
	}

	// ln(0) would be -Inf; a zero view count contributes nothing.
	if c.ViewCount > 0 {
		score += popularityWeight * math.Log(float64(c.ViewCount))
	}

	return score
}

// similarityScore assigns a similarity score between a candidate and a
// reference item. The caller excludes the reference itself from candidates.
func similarityScore(c, ref *models.Content) float64 {
	var score float64

	if c.Category == ref.Category {
		score += sameCategoryPoints
	}

	refGenres := make(map[string]bool)
	for _, g := range ref.GenreList() {
		refGenres[g] = true
	}
	for _, g := range c.GenreList() {
		if refGenres[g] {
			score += genreOverlapPoints
		}
	}

	if c.CreatorID != "" && c.CreatorID == ref.CreatorID {
		score += sameCreatorPoints
	}

	if c.DurationSeconds > 0 && ref.DurationSeconds > 0 {
		diff := c.DurationSeconds - ref.DurationSeconds
		if diff < 0 {
			diff = -diff
		}
		if pts := durationMaxPoints - diff/durationDecayStepSecs; pts > 0 {
			score += float64(pts)
		}
	}

	return score
}

// rankByScore sorts candidates by score descending with a stable tie-break on
// the original catalog order, and returns the top limit items.
func rankByScore(scored []scoredContent, limit int) []models.Content {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	result := make([]models.Content, 0, limit)
	for _, sc := range scored[:limit] {
		result = append(result, sc.content)
	}
	return result
}
