package repository

import (
	"database/sql"
	"fmt"
	"time"

	"mindcare/internal/database"
	"mindcare/internal/models"
)

// GoalRepository handles database operations for wellness goals
type GoalRepository struct {
	db database.DBTX
}

// NewGoalRepository creates a goal repository over db, which may be a
// transaction
func NewGoalRepository(db database.DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

// CreateGoal inserts a new goal
func (r *GoalRepository) CreateGoal(goal *models.Goal) (*models.Goal, error) {
	query := `
		INSERT INTO goals (user_id, title, description, goal_type, target_value, current_value, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		goal.UserID, goal.Title, goal.Description, goal.GoalType,
		goal.TargetValue, goal.CurrentValue, models.GoalStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	created := *goal
	created.ID = id
	created.Status = models.GoalStatusActive
	created.CreatedAt = time.Now()

	return &created, nil
}

// GetGoalsByUser returns a user's goals, newest first
func (r *GoalRepository) GetGoalsByUser(userID int64) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, title, COALESCE(description, ''), goal_type, target_value, current_value, status, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Title,
			&goal.Description,
			&goal.GoalType,
			&goal.TargetValue,
			&goal.CurrentValue,
			&goal.Status,
			&goal.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// GetGoalByID retrieves a single goal owned by the given user
func (r *GoalRepository) GetGoalByID(goalID, userID int64) (*models.Goal, error) {
	query := `
		SELECT id, user_id, title, COALESCE(description, ''), goal_type, target_value, current_value, status, created_at
		FROM goals
		WHERE id = ? AND user_id = ?
	`
	goal := &models.Goal{}
	err := r.db.QueryRow(query, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Description,
		&goal.GoalType,
		&goal.TargetValue,
		&goal.CurrentValue,
		&goal.Status,
		&goal.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

// UpdateGoalProgress persists a recomputed current value and status
func (r *GoalRepository) UpdateGoalProgress(goalID int64, currentValue float64, status string) error {
	query := "UPDATE goals SET current_value = ?, status = ? WHERE id = ?"
	_, err := r.db.Exec(query, currentValue, status, goalID)
	if err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}
	return nil
}

// DeleteGoal removes a goal owned by the given user
func (r *GoalRepository) DeleteGoal(goalID, userID int64) error {
	query := "DELETE FROM goals WHERE id = ? AND user_id = ?"
	result, err := r.db.Exec(query, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("goal not found")
	}

	return nil
}
