package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mindcare/internal/security"
	"mindcare/internal/service"
	"mindcare/internal/validation"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(w, verr)
			return
		}
		if errors.Is(err, service.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "Email already registered", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "registration failed", err)
		return
	}

	// Log the new account straight in
	session, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "post-register login failed", err)
		return
	}

	token, err := h.authService.IssueToken(session)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "token issue failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusCreated, sessionResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "login failed", err)
		return
	}

	token, err := h.authService.IssueToken(session)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "token issue failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondError(w, http.StatusInternalServerError, ErrInternalServerError, "logout failed", err)
			return
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Session handles GET /api/auth/session and returns the authenticated user
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
