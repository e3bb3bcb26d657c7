package service

import (
	"context"
	"time"

	"streamx-recommendation-service/internal/models"
)

// fakeCatalog is an in-memory CatalogSource fixture.
type fakeCatalog struct {
	items []models.Content
}

func (f *fakeCatalog) GetAllContent(_ context.Context) ([]models.Content, error) {
	out := make([]models.Content, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeCatalog) GetContentByID(_ context.Context, id string) (*models.Content, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, nil
}

// fakePreferenceStore is an in-memory PreferenceStore fixture.
type fakePreferenceStore struct {
	prefs   map[string]*models.UserPreference
	history []models.WatchHistoryEntry
}

func newFakePreferenceStore() *fakePreferenceStore {
	return &fakePreferenceStore{prefs: make(map[string]*models.UserPreference)}
}

func (f *fakePreferenceStore) GetPreference(_ context.Context, userID string) (*models.UserPreference, error) {
	pref, ok := f.prefs[userID]
	if !ok {
		return nil, nil
	}
	out := *pref
	return &out, nil
}

func (f *fakePreferenceStore) UpsertPreference(_ context.Context, pref *models.UserPreference) (*models.UserPreference, error) {
	stored := *pref
	stored.LastUpdated = time.Now()
	f.prefs[pref.UserID] = &stored
	out := stored
	return &out, nil
}

func (f *fakePreferenceStore) AppendWatch(_ context.Context, entry *models.WatchHistoryEntry) (*models.WatchHistoryEntry, error) {
	stored := *entry
	stored.ID = len(f.history) + 1
	stored.Timestamp = time.Now()
	f.history = append(f.history, stored)
	out := stored
	return &out, nil
}

func (f *fakePreferenceStore) GetWatchHistory(_ context.Context, userID string, limit int) ([]models.WatchHistoryEntry, error) {
	var entries []models.WatchHistoryEntry
	for i := len(f.history) - 1; i >= 0 && len(entries) < limit; i-- {
		if f.history[i].UserID == userID {
			entries = append(entries, f.history[i])
		}
	}
	return entries, nil
}

func (f *fakePreferenceStore) GetWatchedContentIDs(_ context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range f.history {
		if e.UserID == userID && !seen[e.ContentID] {
			seen[e.ContentID] = true
			ids = append(ids, e.ContentID)
		}
	}
	return ids, nil
}

// fixtureCatalog builds a small catalog covering all content variants.
func fixtureCatalog() *fakeCatalog {
	return &fakeCatalog{items: []models.Content{
		{
			ID: "cnt_001", Title: "The Adventure Begins",
			ContentType: models.ContentTypeMovie, Category: models.CategoryCinema,
			DurationSeconds: 7200, ViewCount: 15420, Rating: 4.7,
			Genres: []string{"Adventure", "Action", "Fantasy"},
		},
		{
			ID: "cnt_002", Title: "Cosmic Odyssey",
			ContentType: models.ContentTypeSeries, Category: models.CategoryOriginals,
			DurationSeconds: 3600, ViewCount: 8750, Rating: 4.9, IsPremium: true,
			Genres: []string{"Sci-Fi", "Drama", "Mystery"},
		},
		{
			ID: "cnt_003", Title: "Live Gaming Marathon",
			ContentType: models.ContentTypeLive, Category: models.CategoryPlay,
			ViewCount: 3200, CreatorID: "usr_002", CreatorName: "GameMaster", IsLive: true,
		},
		{
			ID: "cnt_004", Title: "Behind the Music",
			ContentType: models.ContentTypeVideo, Category: models.CategoryCreators,
			DurationSeconds: 1500, ViewCount: 5100, Rating: 4.2,
			CreatorID: "usr_004", CreatorName: "MelodyMaker",
		},
	}}
}
