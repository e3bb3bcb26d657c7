package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"streamx-recommendation-service/internal/models"
)

func TestLengthBucket(t *testing.T) {
	assert.Equal(t, models.LengthShort, lengthBucket(1))
	assert.Equal(t, models.LengthShort, lengthBucket(1799))
	assert.Equal(t, models.LengthMedium, lengthBucket(1800))
	assert.Equal(t, models.LengthMedium, lengthBucket(5399))
	assert.Equal(t, models.LengthLong, lengthBucket(5400))
	assert.Equal(t, models.LengthLong, lengthBucket(100000))
}

func TestPersonalizedScore(t *testing.T) {
	pref := &models.UserPreference{
		UserID:            "usr_001",
		PreferredGenres:   []string{"Sci-Fi"},
		PreferredCreators: []string{},
		ContentLengthPref: models.LengthMedium,
	}

	candidateA := models.Content{
		ID: "a", ContentType: models.ContentTypeSeries,
		Genres: []string{"Sci-Fi"}, DurationSeconds: 3600, ViewCount: 100,
	}
	candidateB := models.Content{
		ID: "b", ContentType: models.ContentTypeSeries,
		Genres: []string{}, DurationSeconds: 3600, ViewCount: 1000,
	}

	scoreA := personalizedScore(&candidateA, pref)
	scoreB := personalizedScore(&candidateB, pref)

	// 10 (genre) + 5 (medium bucket) + 2*ln(100)
	assert.InDelta(t, 15+2*math.Log(100), scoreA, 1e-9)
	// 5 (medium bucket) + 2*ln(1000)
	assert.InDelta(t, 5+2*math.Log(1000), scoreB, 1e-9)
	assert.Greater(t, scoreA, scoreB)
}

func TestPersonalizedScore_MonotonicGenreBonus(t *testing.T) {
	pref := &models.UserPreference{
		PreferredGenres:   []string{"Action", "Drama"},
		ContentLengthPref: models.LengthMedium,
	}

	one := models.Content{
		ContentType: models.ContentTypeMovie,
		Genres:      []string{"Action"}, DurationSeconds: 3600, ViewCount: 500,
	}
	two := one
	two.Genres = []string{"Action", "Drama"}

	assert.Greater(t, personalizedScore(&two, pref), personalizedScore(&one, pref))
}

func TestPersonalizedScore_CreatorMatch(t *testing.T) {
	pref := &models.UserPreference{
		PreferredCreators: []string{"usr_002"},
		ContentLengthPref: models.LengthMedium,
	}

	c := models.Content{
		ContentType: models.ContentTypeVideo,
		CreatorID:   "usr_002", ViewCount: 1,
	}
	assert.InDelta(t, 15, personalizedScore(&c, pref), 1e-9)

	c.CreatorID = "usr_999"
	assert.InDelta(t, 0, personalizedScore(&c, pref), 1e-9)
}

func TestPersonalizedScore_ZeroViewCount(t *testing.T) {
	pref := &models.UserPreference{ContentLengthPref: models.LengthMedium}

	c := models.Content{ContentType: models.ContentTypeMovie, ViewCount: 0}
	score := personalizedScore(&c, pref)

	assert.False(t, math.IsInf(score, -1))
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestPersonalizedScore_NonGenreVariantIgnoresGenres(t *testing.T) {
	pref := &models.UserPreference{
		PreferredGenres:   []string{"Gaming"},
		ContentLengthPref: models.LengthMedium,
	}

	// A live stream never carries genre metadata, even if the field is set.
	c := models.Content{
		ContentType: models.ContentTypeLive,
		Genres:      []string{"Gaming"}, ViewCount: 1,
	}
	assert.InDelta(t, 0, personalizedScore(&c, pref), 1e-9)
}

func TestPersonalizedScore_MissingDurationSkipsLengthTerm(t *testing.T) {
	pref := &models.UserPreference{ContentLengthPref: models.LengthShort}

	c := models.Content{ContentType: models.ContentTypeMovie, DurationSeconds: 0, ViewCount: 1}
	assert.InDelta(t, 0, personalizedScore(&c, pref), 1e-9)
}

func TestSimilarityScore(t *testing.T) {
	ref := models.Content{
		ID: "ref", ContentType: models.ContentTypeMovie, Category: models.CategoryCinema,
		Genres: []string{"Action", "Adventure"}, DurationSeconds: 3600,
	}
	candidate := models.Content{
		ID: "cand", ContentType: models.ContentTypeMovie, Category: models.CategoryCinema,
		Genres: []string{"Action"}, DurationSeconds: 4200,
	}

	// 10 (category) + 15 (one genre) + 9 (duration diff 600s)
	assert.InDelta(t, 34, similarityScore(&candidate, &ref), 1e-9)
}

func TestSimilarityScore_SameCreator(t *testing.T) {
	ref := models.Content{
		ContentType: models.ContentTypeVideo, Category: models.CategoryCreators,
		CreatorID: "usr_004",
	}
	candidate := models.Content{
		ContentType: models.ContentTypeVideo, Category: models.CategoryCreators,
		CreatorID: "usr_004",
	}

	// 10 (category) + 20 (creator); both lack durations and genres
	assert.InDelta(t, 30, similarityScore(&candidate, &ref), 1e-9)
}

func TestSimilarityScore_DurationDecay(t *testing.T) {
	ref := models.Content{ContentType: models.ContentTypeMovie, Category: models.CategoryCinema, DurationSeconds: 3600}

	same := models.Content{ContentType: models.ContentTypeMovie, Category: models.CategoryOriginals, DurationSeconds: 3600}
	assert.InDelta(t, 10, similarityScore(&same, &ref), 1e-9)

	far := same
	far.DurationSeconds = 3600 + 6000
	assert.InDelta(t, 0, similarityScore(&far, &ref), 1e-9)

	further := same
	further.DurationSeconds = 3600 + 60000
	assert.InDelta(t, 0, similarityScore(&further, &ref), 1e-9)
}

func TestSimilarityScore_MissingGenresContributeZero(t *testing.T) {
	ref := models.Content{
		ContentType: models.ContentTypeMovie, Category: models.CategoryCinema,
		Genres: []string{"Action"},
	}
	live := models.Content{
		ContentType: models.ContentTypeLive, Category: models.CategoryPlay,
		Genres: []string{"Action"},
	}
	assert.InDelta(t, 0, similarityScore(&live, &ref), 1e-9)
}

func TestRankByScore_StableTiesAndLimit(t *testing.T) {
	scored := []scoredContent{
		{content: models.Content{ID: "a"}, score: 5},
		{content: models.Content{ID: "b"}, score: 10},
		{content: models.Content{ID: "c"}, score: 5},
		{content: models.Content{ID: "d"}, score: 5},
	}

	ranked := rankByScore(scored, 10)
	ids := make([]string, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids)

	limited := rankByScore([]scoredContent{
		{content: models.Content{ID: "a"}, score: 1},
		{content: models.Content{ID: "b"}, score: 2},
	}, 1)
	assert.Len(t, limited, 1)
	assert.Equal(t, "b", limited[0].ID)
}
