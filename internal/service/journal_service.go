package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"mindcare/internal/models"
	"mindcare/internal/repository"
	"mindcare/internal/retry"
	"mindcare/internal/stats"
	"mindcare/internal/validation"
)

// FallbackAffirmation is served whenever the affirmation provider fails or
// is not configured. Journaling must never fail because an upstream did.
const FallbackAffirmation = "You are not alone. Brighter days are ahead. You have the strength to overcome any challenge."

// SubmissionResult is the outcome of logging a mood entry
type SubmissionResult struct {
	Entry        *models.MoodEntry `json:"entry"`
	Affirmation  string            `json:"affirmation"`
	Personalized bool              `json:"personalized"`
}

// JournalService handles mood entry business logic
type JournalService struct {
	moodRepo     *repository.MoodRepository
	affirmations *AffirmationService
	retryCfg     retry.Config

	mu      sync.Mutex
	runners map[int64]*retry.Runner[string]
}

// NewJournalService creates a new journal service
func NewJournalService(moodRepo *repository.MoodRepository, affirmations *AffirmationService, retryCfg retry.Config) *JournalService {
	return &JournalService{
		moodRepo:     moodRepo,
		affirmations: affirmations,
		retryCfg:     retryCfg,
		runners:      make(map[int64]*retry.Runner[string]),
	}
}

// runnerFor returns the per-user affirmation runner. One runner per user
// means a rapid second submission supersedes the still-running affirmation
// request from the first.
func (s *JournalService) runnerFor(userID int64) *retry.Runner[string] {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runners[userID]
	if !ok {
		r = retry.NewRunner[string](s.retryCfg)
		s.runners[userID] = r
	}
	return r
}

// SubmitEntry validates and stores a mood entry, then fetches an affirmation
// for it. The entry is persisted before the affirmation call so a provider
// outage can never lose journal data.
func (s *JournalService) SubmitEntry(ctx context.Context, userID int64, moodRating int, note, userMood string) (*SubmissionResult, error) {
	if err := validation.ValidateMoodRating(moodRating); err != nil {
		return nil, err
	}
	if err := validation.ValidateNote(note); err != nil {
		return nil, err
	}

	entry, err := s.moodRepo.CreateEntry(userID, moodRating, note)
	if err != nil {
		return nil, fmt.Errorf("failed to save mood entry: %w", err)
	}

	affirmation, personalized := s.fetchAffirmation(ctx, userID, moodRating, note, userMood)

	return &SubmissionResult{
		Entry:        entry,
		Affirmation:  affirmation,
		Personalized: personalized,
	}, nil
}

// fetchAffirmation asks the provider for an affirmation. The free-text note
// doubles as the mood description when the person did not write a separate
// one, so notes shape the affirmation too.
func (s *JournalService) fetchAffirmation(ctx context.Context, userID int64, moodRating int, note, userMood string) (string, bool) {
	if strings.TrimSpace(userMood) == "" {
		userMood = note
	}

	runner := s.runnerFor(userID)

	text, err := runner.Execute(ctx, func(ctx context.Context) (string, error) {
		return s.affirmations.Generate(ctx, moodRating, userMood)
	})
	if err != nil {
		log.Printf("affirmation fetch failed for user %d: %v", userID, err)
		return FallbackAffirmation, false
	}

	return text, true
}

// RecentEntries returns a user's latest entries, newest first
func (s *JournalService) RecentEntries(userID int64, limit int) ([]models.MoodEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	entries, err := s.moodRepo.GetRecentEntries(userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	return entries, nil
}

// WeeklyReport aggregates the last seven days of entries
func (s *JournalService) WeeklyReport(userID int64) (*stats.WeeklyStats, error) {
	since := time.Now().Add(-stats.WeeklyWindow)
	entries, err := s.moodRepo.GetEntriesSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly entries: %w", err)
	}

	report := stats.Weekly(entries)
	return &report, nil
}

// TrendSeries returns per-day mood averages over the trend window
func (s *JournalService) TrendSeries(userID int64) ([]stats.TrendPoint, error) {
	since := time.Now().Add(-stats.TrendWindow)
	entries, err := s.moodRepo.GetEntriesSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load trend entries: %w", err)
	}

	return stats.TrendSeries(entries), nil
}
