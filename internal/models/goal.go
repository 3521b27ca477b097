package models

import (
	"fmt"
	"math"
	"time"
)

// Goal types. All but weekly_target have their current value recomputed
// from raw mood entries on every read; weekly_target passes the stored
// value through unchanged.
const (
	GoalTypeDailyLog     = "daily_log"
	GoalTypeMoodAverage  = "mood_average"
	GoalTypeStreak       = "streak"
	GoalTypeWeeklyTarget = "weekly_target"
)

// Goal statuses. Status only affects badge styling; achievement is always
// derived from current vs target value.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// ValidGoalType reports whether t is one of the supported goal types
func ValidGoalType(t string) bool {
	switch t {
	case GoalTypeDailyLog, GoalTypeMoodAverage, GoalTypeStreak, GoalTypeWeeklyTarget:
		return true
	}
	return false
}

// Goal represents a wellness goal tracked against mood entries
type Goal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	GoalType     string    `json:"goal_type"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAchieved reports whether the goal has reached its target. The stored
// status field is deliberately not consulted here.
func (g *Goal) IsAchieved() bool {
	return g.CurrentValue >= g.TargetValue
}

// ProgressPercent returns progress toward the target, clamped to 100
// for progress-bar rendering.
func (g *Goal) ProgressPercent() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	pct := (g.CurrentValue / g.TargetValue) * 100
	return math.Min(pct, 100)
}

// DisplayValue formats the current value for display: mood averages show
// one decimal place, everything else shows the floor.
func (g *Goal) DisplayValue() string {
	if g.GoalType == GoalTypeMoodAverage {
		return fmt.Sprintf("%.1f", g.CurrentValue)
	}
	return fmt.Sprintf("%d", int(math.Floor(g.CurrentValue)))
}
