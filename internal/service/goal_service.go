package service

import (
	"fmt"
	"log"
	"time"

	"mindcare/internal/models"
	"mindcare/internal/repository"
	"mindcare/internal/stats"
	"mindcare/internal/validation"
)

// GoalService handles wellness goal business logic
type GoalService struct {
	goalRepo *repository.GoalRepository
	moodRepo *repository.MoodRepository
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo *repository.GoalRepository, moodRepo *repository.MoodRepository) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		moodRepo: moodRepo,
	}
}

// CreateGoal validates and stores a new goal
func (s *GoalService) CreateGoal(userID int64, title, description, goalType string, targetValue float64) (*models.Goal, error) {
	goal := &models.Goal{
		UserID:      userID,
		Title:       title,
		Description: description,
		GoalType:    goalType,
		TargetValue: targetValue,
	}

	if err := validation.ValidateGoal(goal); err != nil {
		return nil, err
	}

	return s.goalRepo.CreateGoal(goal)
}

// ListGoals returns a user's goals with current values recomputed from raw
// mood entries. Stored current values are refreshed in the background so a
// later read without entries still shows the last known progress.
func (s *GoalService) ListGoals(userID int64) ([]models.Goal, error) {
	goals, err := s.goalRepo.GetGoalsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return []models.Goal{}, nil
	}

	since := time.Now().Add(-stats.WeeklyWindow)
	windowEntries, err := s.moodRepo.GetEntriesSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for goal progress: %w", err)
	}

	recentEntries, err := s.moodRepo.GetRecentEntries(userID, stats.StreakSampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent entries for goal progress: %w", err)
	}

	for i := range goals {
		current := stats.GoalProgress(goals[i], windowEntries, recentEntries)

		status := models.GoalStatusActive
		if current >= goals[i].TargetValue {
			status = models.GoalStatusCompleted
		}

		if current != goals[i].CurrentValue || status != goals[i].Status {
			if err := s.goalRepo.UpdateGoalProgress(goals[i].ID, current, status); err != nil {
				// Stale persisted progress is tolerable; the response
				// still carries the fresh value
				log.Printf("failed to persist goal %d progress: %v", goals[i].ID, err)
			}
		}

		goals[i].CurrentValue = current
		goals[i].Status = status
	}

	return goals, nil
}

// DeleteGoal removes one of the user's goals
func (s *GoalService) DeleteGoal(goalID, userID int64) error {
	return s.goalRepo.DeleteGoal(goalID, userID)
}
