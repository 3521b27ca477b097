// Package validation holds input validation rules for API payloads.
package validation

import (
	"fmt"
	"strings"

	"mindcare/internal/models"
)

// ValidationError describes a single rejected field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	maxEmailLength = 254
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit
	maxNameLength  = 100
	maxNoteLength  = 2000
	maxTitleLength = 200
)

// ValidateEmail checks an email address for basic shape and length
func ValidateEmail(email string) *ValidationError {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > maxEmailLength {
		return &ValidationError{Field: "email", Message: "email is too long"}
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}
	if !strings.Contains(email[at+1:], ".") {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}

	return nil
}

// ValidatePassword enforces password length bounds
func ValidatePassword(password string) *ValidationError {
	if len(password) < minPasswordLen {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", minPasswordLen)}
	}
	if len(password) > maxPasswordLen {
		return &ValidationError{Field: "password", Message: "password is too long"}
	}
	return nil
}

// ValidateName checks a display name
func ValidateName(name string) *ValidationError {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > maxNameLength {
		return &ValidationError{Field: "name", Message: "name is too long"}
	}
	return nil
}

// ValidateMoodRating checks a mood rating is on the 1 to 5 scale.
// Zero is rejected; a missing rating must be caught before decoding defaults it.
func ValidateMoodRating(rating int) *ValidationError {
	if rating < models.MinMoodRating || rating > models.MaxMoodRating {
		return &ValidationError{
			Field:   "moodRating",
			Message: fmt.Sprintf("mood rating must be between %d and %d", models.MinMoodRating, models.MaxMoodRating),
		}
	}
	return nil
}

// ValidateNote checks an optional journal note
func ValidateNote(note string) *ValidationError {
	if len(note) > maxNoteLength {
		return &ValidationError{Field: "note", Message: "note is too long"}
	}
	return nil
}

// ValidateGoal checks a goal creation payload
func ValidateGoal(goal *models.Goal) *ValidationError {
	title := strings.TrimSpace(goal.Title)
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{Field: "title", Message: "title is too long"}
	}
	if !models.ValidGoalType(goal.GoalType) {
		return &ValidationError{Field: "goalType", Message: "unknown goal type"}
	}
	if goal.TargetValue <= 0 {
		return &ValidationError{Field: "targetValue", Message: "target value must be positive"}
	}
	return nil
}
