package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mindcare/internal/service"
	"mindcare/internal/stats"
	"mindcare/internal/validation"
)

// Read deadlines for report endpoints. When a deadline passes the client
// gets a degraded empty payload instead of an error; the dashboard must
// render even when the database is struggling.
const (
	trendTimeout  = 8 * time.Second
	reportTimeout = 8 * time.Second
)

// MoodHandler handles mood entry and report endpoints
type MoodHandler struct {
	journalService *service.JournalService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(journalService *service.JournalService) *MoodHandler {
	return &MoodHandler{journalService: journalService}
}

type submitEntryRequest struct {
	MoodRating int    `json:"moodRating"`
	Note       string `json:"note"`
	UserMood   string `json:"userMood"`
}

// Submit handles POST /api/moods
func (h *MoodHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req submitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	result, err := h.journalService.SubmitEntry(r.Context(), user.ID, req.MoodRating, req.Note, req.UserMood)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(w, verr)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "mood submission failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// List handles GET /api/moods
func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := h.journalService.RecentEntries(user.ID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list entries", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Trends handles GET /api/moods/trends
func (h *MoodHandler) Trends(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	type trendResult struct {
		points []stats.TrendPoint
		err    error
	}

	ctx, cancel := context.WithTimeout(r.Context(), trendTimeout)
	defer cancel()

	resultCh := make(chan trendResult, 1)
	go func() {
		points, err := h.journalService.TrendSeries(user.ID)
		resultCh <- trendResult{points: points, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			respondError(w, http.StatusInternalServerError, ErrInternalServerError, "trend query failed", res.err)
			return
		}
		if res.points == nil {
			res.points = []stats.TrendPoint{}
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"points": res.points})
	case <-ctx.Done():
		// Degrade to an empty series rather than failing the dashboard
		respondJSON(w, http.StatusOK, map[string]interface{}{"points": []stats.TrendPoint{}})
	}
}

// WeeklyReport handles GET /api/reports/weekly
func (h *MoodHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	type reportResult struct {
		report *stats.WeeklyStats
		err    error
	}

	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	resultCh := make(chan reportResult, 1)
	go func() {
		report, err := h.journalService.WeeklyReport(user.ID)
		resultCh <- reportResult{report: report, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			// Zero-valued report keeps the dashboard rendering
			respondJSON(w, http.StatusOK, stats.WeeklyStats{})
			return
		}
		respondJSON(w, http.StatusOK, res.report)
	case <-ctx.Done():
		respondJSON(w, http.StatusOK, stats.WeeklyStats{})
	}
}
