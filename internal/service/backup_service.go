package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"mindcare/internal/database"
)

// BackupData represents the complete database backup structure. Sessions
// are deliberately excluded; they are ephemeral.
type BackupData struct {
	Version     string          `json:"version"`
	ExportedAt  time.Time       `json:"exported_at"`
	Users       []UserBackup    `json:"users"`
	Profiles    []ProfileBackup `json:"profiles"`
	MoodEntries []EntryBackup   `json:"mood_entries"`
	Goals       []GoalBackup    `json:"goals"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileBackup represents a profile record for backup
type ProfileBackup struct {
	UserID       int64      `json:"user_id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	WeeklyDigest bool       `json:"weekly_digest"`
	LastDigestAt *time.Time `json:"last_digest_at"`
}

// EntryBackup represents a mood entry record for backup
type EntryBackup struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	MoodRating int       `json:"mood_rating"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// GoalBackup represents a goal record for backup
type GoalBackup struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	GoalType     string    `json:"goal_type"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportProfiles(backup); err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	if err := s.exportEntries(backup); err != nil {
		return fmt.Errorf("failed to export mood entries: %w", err)
	}
	if err := s.exportGoals(backup); err != nil {
		return fmt.Errorf("failed to export goals: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d profiles, %d entries, %d goals",
		len(backup.Users), len(backup.Profiles), len(backup.MoodEntries), len(backup.Goals))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader. The whole
// import runs in one transaction; a failed restore leaves nothing behind.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	// Import in order of foreign key dependencies
	if err := importUsers(tx, backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := importProfiles(tx, backup.Profiles); err != nil {
		return fmt.Errorf("failed to import profiles: %w", err)
	}
	if err := importEntries(tx, backup.MoodEntries); err != nil {
		return fmt.Errorf("failed to import mood entries: %w", err)
	}
	if err := importGoals(tx, backup.Goals); err != nil {
		return fmt.Errorf("failed to import goals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), is_admin, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportProfiles(backup *BackupData) error {
	query := "SELECT user_id, COALESCE(first_name, ''), COALESCE(last_name, ''), weekly_digest, last_digest_at FROM profiles ORDER BY user_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProfileBackup
		if err := rows.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.WeeklyDigest, &p.LastDigestAt); err != nil {
			return err
		}
		backup.Profiles = append(backup.Profiles, p)
	}
	return rows.Err()
}

func (s *BackupService) exportEntries(backup *BackupData) error {
	query := "SELECT id, user_id, mood_rating, COALESCE(note, ''), created_at FROM mood_entries ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e EntryBackup
		if err := rows.Scan(&e.ID, &e.UserID, &e.MoodRating, &e.Note, &e.CreatedAt); err != nil {
			return err
		}
		backup.MoodEntries = append(backup.MoodEntries, e)
	}
	return rows.Err()
}

func (s *BackupService) exportGoals(backup *BackupData) error {
	query := "SELECT id, user_id, title, COALESCE(description, ''), goal_type, target_value, current_value, status, created_at FROM goals ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g GoalBackup
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.GoalType, &g.TargetValue, &g.CurrentValue, &g.Status, &g.CreatedAt); err != nil {
			return err
		}
		backup.Goals = append(backup.Goals, g)
	}
	return rows.Err()
}

func importUsers(tx *database.Tx, users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := tx.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.IsAdmin, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func importProfiles(tx *database.Tx, profiles []ProfileBackup) error {
	log.Printf("Importing %d profiles...", len(profiles))
	for _, p := range profiles {
		query := "INSERT INTO profiles (user_id, first_name, last_name, weekly_digest, last_digest_at) VALUES (?, ?, ?, ?, ?)"
		_, err := tx.Exec(query, p.UserID, p.FirstName, p.LastName, p.WeeklyDigest, p.LastDigestAt)
		if err != nil {
			return fmt.Errorf("failed to import profile for user %d: %w", p.UserID, err)
		}
	}
	return nil
}

func importEntries(tx *database.Tx, entries []EntryBackup) error {
	log.Printf("Importing %d mood entries...", len(entries))
	for _, e := range entries {
		query := "INSERT INTO mood_entries (id, user_id, mood_rating, note, created_at) VALUES (?, ?, ?, ?, ?)"
		_, err := tx.Exec(query, e.ID, e.UserID, e.MoodRating, nullIfEmpty(e.Note), e.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import mood entry %d: %w", e.ID, err)
		}
	}
	return nil
}

func importGoals(tx *database.Tx, goals []GoalBackup) error {
	log.Printf("Importing %d goals...", len(goals))
	for _, g := range goals {
		query := "INSERT INTO goals (id, user_id, title, description, goal_type, target_value, current_value, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := tx.Exec(query, g.ID, g.UserID, g.Title, nullIfEmpty(g.Description), g.GoalType, g.TargetValue, g.CurrentValue, g.Status, g.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import goal %d: %w", g.ID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
