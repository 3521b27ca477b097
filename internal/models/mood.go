package models

import "time"

// Mood rating bounds; ratings are a 1-5 scale where 4+ counts as a
// positive mood for streak purposes.
const (
	MinMoodRating      = 1
	MaxMoodRating      = 5
	PositiveMoodRating = 4
)

// MoodEntry is a single mood log record. Entries are immutable once
// created; there is no edit or delete flow.
type MoodEntry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	MoodRating int       `json:"mood_rating"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsPositive reports whether the entry counts toward a positive-mood streak
func (e *MoodEntry) IsPositive() bool {
	return e.MoodRating >= PositiveMoodRating
}
