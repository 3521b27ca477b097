package handlers

import (
	"encoding/json"
	"net/http"

	"mindcare/internal/service"
)

// AffirmationHandler proxies affirmation requests to the upstream provider.
// Unlike the journaling flow this endpoint surfaces upstream failures as
// errors; the caller decides what to show.
type AffirmationHandler struct {
	affirmations *service.AffirmationService
}

// NewAffirmationHandler creates a new affirmation handler
func NewAffirmationHandler(affirmations *service.AffirmationService) *AffirmationHandler {
	return &AffirmationHandler{affirmations: affirmations}
}

type affirmationRequest struct {
	MoodRating int    `json:"moodRating"`
	UserMood   string `json:"userMood"`
}

// Generate handles POST /api/affirmations and OPTIONS preflights.
// Open CORS policy: the endpoint holds no user data and the API key never
// leaves the server.
func (h *AffirmationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req affirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate affirmation", "bad affirmation request", err)
		return
	}

	text, err := h.affirmations.Generate(r.Context(), req.MoodRating, req.UserMood)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate affirmation", "affirmation generation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"affirmation": text})
}
