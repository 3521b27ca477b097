package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mindcare/internal/models"
	"mindcare/internal/service"
	"mindcare/internal/validation"
)

// GoalHandler handles wellness goal endpoints
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type createGoalRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GoalType    string  `json:"goalType"`
	TargetValue float64 `json:"targetValue"`
}

// Create handles POST /api/goals
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	goal, err := h.goalService.CreateGoal(user.ID, req.Title, req.Description, req.GoalType, req.TargetValue)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(w, verr)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "goal creation failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

// goalView wraps a goal with its derived display fields
type goalView struct {
	models.Goal
	ProgressPercent float64 `json:"progress_percent"`
	DisplayValue    string  `json:"display_value"`
	Achieved        bool    `json:"achieved"`
}

// List handles GET /api/goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	goals, err := h.goalService.ListGoals(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list goals", err)
		return
	}

	views := make([]goalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, goalView{
			Goal:            goal,
			ProgressPercent: goal.ProgressPercent(),
			DisplayValue:    goal.DisplayValue(),
			Achieved:        goal.IsAchieved(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"goals": views})
}

// Delete handles DELETE /api/goals/{id}
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	goalID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid goal id", "", nil)
		return
	}

	if err := h.goalService.DeleteGoal(goalID, user.ID); err != nil {
		respondError(w, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
