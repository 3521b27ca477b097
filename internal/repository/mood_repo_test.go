package repository

import (
	"database/sql"
	"errors"
	"testing"

	"mindcare/internal/database"
)

// Repositories accept DBTX so the same queries can run against the pool or
// inside a transaction
var (
	_ database.DBTX = (*database.DB)(nil)
	_ database.DBTX = (*database.Tx)(nil)
)

type stubDBTX struct {
	execReturningID func(query string, args ...interface{}) (int64, error)
}

func (s *stubDBTX) Exec(query string, args ...interface{}) (sql.Result, error) {
	return nil, errors.New("unexpected Exec")
}

func (s *stubDBTX) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (s *stubDBTX) QueryRow(query string, args ...interface{}) *sql.Row {
	return nil
}

func (s *stubDBTX) ExecReturningID(query string, args ...interface{}) (int64, error) {
	return s.execReturningID(query, args...)
}

func TestCreateEntryReturnsPersistedFields(t *testing.T) {
	repo := NewMoodRepository(&stubDBTX{
		execReturningID: func(query string, args ...interface{}) (int64, error) {
			if len(args) != 3 {
				t.Fatalf("args = %v, want user id, rating and note", args)
			}
			return 42, nil
		},
	})

	entry, err := repo.CreateEntry(7, 4, "walked outside")
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if entry.ID != 42 || entry.UserID != 7 || entry.MoodRating != 4 || entry.Note != "walked outside" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("entry has no creation time")
	}
}

func TestCreateEntryPropagatesInsertError(t *testing.T) {
	repo := NewMoodRepository(&stubDBTX{
		execReturningID: func(query string, args ...interface{}) (int64, error) {
			return 0, errors.New("disk full")
		},
	})

	if _, err := repo.CreateEntry(7, 4, ""); err == nil {
		t.Error("CreateEntry() succeeded despite insert failure")
	}
}
