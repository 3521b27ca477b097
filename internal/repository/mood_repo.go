package repository

import (
	"fmt"
	"time"

	"mindcare/internal/database"
	"mindcare/internal/models"
)

// MoodRepository handles database operations for mood entries
type MoodRepository struct {
	db database.DBTX
}

// NewMoodRepository creates a mood repository over db, which may be a
// transaction
func NewMoodRepository(db database.DBTX) *MoodRepository {
	return &MoodRepository{db: db}
}

// CreateEntry inserts a new mood entry
func (r *MoodRepository) CreateEntry(userID int64, moodRating int, note string) (*models.MoodEntry, error) {
	query := `
		INSERT INTO mood_entries (user_id, mood_rating, note)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, moodRating, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	entry := &models.MoodEntry{
		ID:         id,
		UserID:     userID,
		MoodRating: moodRating,
		Note:       note,
		CreatedAt:  time.Now(),
	}

	return entry, nil
}

// GetEntriesSince returns a user's entries created at or after since,
// oldest first. Aggregation code depends on this ordering.
func (r *MoodRepository) GetEntriesSince(userID int64, since time.Time) ([]models.MoodEntry, error) {
	query := `
		SELECT id, user_id, mood_rating, COALESCE(note, ''), created_at
		FROM mood_entries
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var entry models.MoodEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MoodRating,
			&entry.Note,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetRecentEntries returns a user's most recent entries, newest first,
// capped at limit
func (r *MoodRepository) GetRecentEntries(userID int64, limit int) ([]models.MoodEntry, error) {
	query := `
		SELECT id, user_id, mood_rating, COALESCE(note, ''), created_at
		FROM mood_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent mood entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var entry models.MoodEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MoodRating,
			&entry.Note,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetAllEntries returns every entry for a user, oldest first
func (r *MoodRepository) GetAllEntries(userID int64) ([]models.MoodEntry, error) {
	query := `
		SELECT id, user_id, mood_rating, COALESCE(note, ''), created_at
		FROM mood_entries
		WHERE user_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var entry models.MoodEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MoodRating,
			&entry.Note,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
