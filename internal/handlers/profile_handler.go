package handlers

import (
	"encoding/json"
	"net/http"

	"mindcare/internal/service"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	authService *service.AuthService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

type updateProfileRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	WeeklyDigest bool   `json:"weekly_digest"`
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	profile, err := h.authService.GetProfile(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load profile", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile":      profile,
		"display_name": profile.DisplayName(user.Email),
	})
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	profile, err := h.authService.UpdateProfile(user.ID, req.FirstName, req.LastName, req.WeeklyDigest)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to update profile", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile":      profile,
		"display_name": profile.DisplayName(user.Email),
	})
}
