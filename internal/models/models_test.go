package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{
			name:      "future expiry",
			expiresAt: time.Now().Add(1 * time.Hour),
			expected:  false,
		},
		{
			name:      "past expiry",
			expiresAt: time.Now().Add(-1 * time.Minute),
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ExpiresAt: tt.expiresAt}
			if got := s.IsExpired(); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGoalProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		target   float64
		expected float64
	}{
		{
			name:     "halfway",
			current:  3.5,
			target:   7,
			expected: 50,
		},
		{
			name:     "over target clamps to 100",
			current:  12,
			target:   7,
			expected: 100,
		},
		{
			name:     "zero target",
			current:  5,
			target:   0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{CurrentValue: tt.current, TargetValue: tt.target}
			if got := g.ProgressPercent(); got != tt.expected {
				t.Errorf("ProgressPercent() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGoalDisplayValue(t *testing.T) {
	tests := []struct {
		name     string
		goalType string
		current  float64
		expected string
	}{
		{
			name:     "mood average shows one decimal",
			goalType: GoalTypeMoodAverage,
			current:  4,
			expected: "4.0",
		},
		{
			name:     "daily log shows floor",
			goalType: GoalTypeDailyLog,
			current:  3.9,
			expected: "3",
		},
		{
			name:     "streak shows floor",
			goalType: GoalTypeStreak,
			current:  5,
			expected: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{GoalType: tt.goalType, CurrentValue: tt.current}
			if got := g.DisplayValue(); got != tt.expected {
				t.Errorf("DisplayValue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGoalIsAchieved(t *testing.T) {
	g := &Goal{CurrentValue: 4.0, TargetValue: 4.0, Status: GoalStatusActive}
	if !g.IsAchieved() {
		t.Error("goal at exactly its target should be achieved")
	}

	// Stored status must not override the derived result
	g = &Goal{CurrentValue: 2, TargetValue: 4, Status: GoalStatusCompleted}
	if g.IsAchieved() {
		t.Error("goal below target should not be achieved regardless of status")
	}
}

func TestValidGoalType(t *testing.T) {
	for _, valid := range []string{GoalTypeDailyLog, GoalTypeMoodAverage, GoalTypeStreak, GoalTypeWeeklyTarget} {
		if !ValidGoalType(valid) {
			t.Errorf("ValidGoalType(%q) = false, want true", valid)
		}
	}
	if ValidGoalType("marathon") {
		t.Error(`ValidGoalType("marathon") = true, want false`)
	}
}

func TestProfileDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		email    string
		expected string
	}{
		{
			name:     "full name",
			profile:  Profile{FirstName: "Ada", LastName: "Lovelace"},
			email:    "ada@example.com",
			expected: "Ada Lovelace",
		},
		{
			name:     "first name only",
			profile:  Profile{FirstName: "Ada"},
			email:    "ada@example.com",
			expected: "Ada",
		},
		{
			name:     "empty profile falls back to email",
			profile:  Profile{},
			email:    "ada@example.com",
			expected: "ada@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.DisplayName(tt.email); got != tt.expected {
				t.Errorf("DisplayName() = %v, want %v", got, tt.expected)
			}
		})
	}
}
