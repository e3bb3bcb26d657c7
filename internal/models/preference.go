package models

import "time"

// ContentLength buckets a duration preference.
type ContentLength string

const (
	LengthShort  ContentLength = "short"
	LengthMedium ContentLength = "medium"
	LengthLong   ContentLength = "long"
)

// WatchTime is the user's preferred viewing window. Informational only;
// no scoring term reads it.
type WatchTime string

const (
	WatchMorning   WatchTime = "morning"
	WatchAfternoon WatchTime = "afternoon"
	WatchEvening   WatchTime = "evening"
	WatchNight     WatchTime = "night"
)

// UserPreference stores a user's inferred viewing preferences. At most one
// record per user; absence means a cold-start user, not an error.
type UserPreference struct {
	UserID              string        `json:"user_id"`
	PreferredGenres     []string      `json:"preferred_genres"`
	PreferredCreators   []string      `json:"preferred_creators"`
	ContentLengthPref   ContentLength `json:"content_length_preference"`
	WatchTimePreference WatchTime     `json:"watch_time_preference"`
	LastUpdated         time.Time     `json:"last_updated"`
}

// DefaultPreference returns the record created on a user's first watch event.
func DefaultPreference(userID string) *UserPreference {
	return &UserPreference{
		UserID:              userID,
		PreferredGenres:     []string{},
		PreferredCreators:   []string{},
		ContentLengthPref:   LengthMedium,
		WatchTimePreference: WatchEvening,
	}
}

// WatchHistoryEntry is an append-only watch event.
type WatchHistoryEntry struct {
	ID               int       `json:"id"`
	UserID           string    `json:"user_id"`
	ContentID        string    `json:"content_id"`
	WatchDurationSec int       `json:"watch_duration_seconds"`
	Completed        bool      `json:"completed"`
	Timestamp        time.Time `json:"timestamp"`
}

// SetPreferenceRequest is the request body for setting preferences.
type SetPreferenceRequest struct {
	PreferredGenres     []string `json:"preferred_genres"`
	PreferredCreators   []string `json:"preferred_creators"`
	ContentLengthPref   string   `json:"content_length_preference"`
	WatchTimePreference string   `json:"watch_time_preference"`
}

// RecordWatchRequest is the request body for recording a watch event.
type RecordWatchRequest struct {
	ContentID        string `json:"content_id"`
	WatchDurationSec int    `json:"watch_duration_seconds"`
	Completed        bool   `json:"completed"`
}

// Valid content length preferences
var ValidContentLengths = map[string]bool{
	string(LengthShort):  true,
	string(LengthMedium): true,
	string(LengthLong):   true,
}

// Valid watch time preferences
var ValidWatchTimes = map[string]bool{
	string(WatchMorning):   true,
	string(WatchAfternoon): true,
	string(WatchEvening):   true,
	string(WatchNight):     true,
}
