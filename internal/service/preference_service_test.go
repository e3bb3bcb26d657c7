package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamx-recommendation-service/internal/models"
)

func TestRecordWatch_CreatesDefaultPreference(t *testing.T) {
	prefs := newFakePreferenceStore()
	svc := NewPreferenceService(prefs, nil)

	pref, err := svc.RecordWatch(context.Background(), "usr_new", models.RecordWatchRequest{
		ContentID:        "cnt_001",
		WatchDurationSec: 1200,
		Completed:        false,
	})
	require.NoError(t, err)

	assert.Equal(t, "usr_new", pref.UserID)
	assert.Empty(t, pref.PreferredGenres)
	assert.Empty(t, pref.PreferredCreators)
	assert.Equal(t, models.LengthMedium, pref.ContentLengthPref)
	assert.Equal(t, models.WatchEvening, pref.WatchTimePreference)
	assert.False(t, pref.LastUpdated.IsZero())

	history, err := svc.GetWatchHistory(context.Background(), "usr_new", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "cnt_001", history[0].ContentID)
	assert.Equal(t, 1200, history[0].WatchDurationSec)
}

func TestRecordWatch_KeepsExistingPreferences(t *testing.T) {
	prefs := newFakePreferenceStore()
	existing, err := prefs.UpsertPreference(context.Background(), &models.UserPreference{
		UserID:              "usr_001",
		PreferredGenres:     []string{"Action", "Sci-Fi"},
		PreferredCreators:   []string{"usr_002"},
		ContentLengthPref:   models.LengthLong,
		WatchTimePreference: models.WatchNight,
	})
	require.NoError(t, err)

	svc := NewPreferenceService(prefs, nil)

	time.Sleep(time.Millisecond)
	pref, err := svc.RecordWatch(context.Background(), "usr_001", models.RecordWatchRequest{
		ContentID: "cnt_002", WatchDurationSec: 3600, Completed: true,
	})
	require.NoError(t, err)

	// Only the timestamp is refreshed; the learned fields stay as they were.
	assert.Equal(t, existing.PreferredGenres, pref.PreferredGenres)
	assert.Equal(t, existing.PreferredCreators, pref.PreferredCreators)
	assert.Equal(t, existing.ContentLengthPref, pref.ContentLengthPref)
	assert.True(t, pref.LastUpdated.After(existing.LastUpdated))
}

func TestRecordWatch_Validation(t *testing.T) {
	prefs := newFakePreferenceStore()
	svc := NewPreferenceService(prefs, nil)

	_, err := svc.RecordWatch(context.Background(), "usr_001", models.RecordWatchRequest{})
	assert.Error(t, err)

	_, err = svc.RecordWatch(context.Background(), "usr_001", models.RecordWatchRequest{
		ContentID: "cnt_001", WatchDurationSec: -5,
	})
	assert.Error(t, err)

	assert.Empty(t, prefs.history)
}

func TestRecordWatch_AppendOnlyHistory(t *testing.T) {
	prefs := newFakePreferenceStore()
	svc := NewPreferenceService(prefs, nil)

	for _, id := range []string{"cnt_001", "cnt_002", "cnt_001"} {
		_, err := svc.RecordWatch(context.Background(), "usr_001", models.RecordWatchRequest{
			ContentID: id, WatchDurationSec: 60,
		})
		require.NoError(t, err)
	}

	// Re-watching appends, it never rewrites.
	assert.Len(t, prefs.history, 3)
}

func TestGetPreference_ColdStartDefaults(t *testing.T) {
	svc := NewPreferenceService(newFakePreferenceStore(), nil)

	pref, err := svc.GetPreference(context.Background(), "usr_unknown")
	require.NoError(t, err)

	assert.Equal(t, "usr_unknown", pref.UserID)
	assert.Equal(t, models.LengthMedium, pref.ContentLengthPref)
	assert.Empty(t, pref.PreferredGenres)
}

func TestSetPreference(t *testing.T) {
	prefs := newFakePreferenceStore()
	svc := NewPreferenceService(prefs, nil)

	pref, err := svc.SetPreference(context.Background(), "usr_001", models.SetPreferenceRequest{
		PreferredGenres:   []string{"Comedy"},
		ContentLengthPref: "short",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Comedy"}, pref.PreferredGenres)
	assert.Equal(t, models.LengthShort, pref.ContentLengthPref)
	assert.Equal(t, models.WatchEvening, pref.WatchTimePreference)
}

func TestSetPreference_InvalidValues(t *testing.T) {
	svc := NewPreferenceService(newFakePreferenceStore(), nil)

	_, err := svc.SetPreference(context.Background(), "usr_001", models.SetPreferenceRequest{
		ContentLengthPref: "gigantic",
	})
	assert.Error(t, err)

	_, err = svc.SetPreference(context.Background(), "usr_001", models.SetPreferenceRequest{
		WatchTimePreference: "midnight",
	})
	assert.Error(t, err)
}
