package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"mindcare/internal/security"
	"mindcare/internal/service"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// OAuthHandler implements the Google sign-in flow
type OAuthHandler struct {
	authService     *service.AuthService
	config          *oauth2.Config
	redirectBaseURL string
	postLoginPath   string
}

// NewOAuthHandler creates a new OAuth handler. With an empty client ID the
// handler reports the flow as unavailable.
func NewOAuthHandler(authService *service.AuthService, clientID, clientSecret, redirectBaseURL string) *OAuthHandler {
	return &OAuthHandler{
		authService: authService,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleEndpoint,
		},
		redirectBaseURL: redirectBaseURL,
		postLoginPath:   "/",
	}
}

func (h *OAuthHandler) configured() bool {
	return h.config.ClientID != "" && h.config.ClientSecret != ""
}

// Start handles GET /auth/google/start
func (h *OAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		respondError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	state := security.GenerateSessionID()
	h.setTempCookie(w, r, "oauth_state", state, 10*time.Minute)

	config := *h.config
	config.RedirectURL = h.redirectURL(r)

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles GET /auth/google/callback
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		respondError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Missing authorization code", "", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "Invalid OAuth state", "", nil)
		return
	}
	h.clearTempCookie(w, r, "oauth_state")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	config := *h.config
	config.RedirectURL = h.redirectURL(r)

	token, err := config.Exchange(ctx, code)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to exchange OAuth code", "oauth exchange failed", err)
		return
	}

	userInfo, err := fetchGoogleUser(ctx, token)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to fetch Google account", "oauth userinfo failed", err)
		return
	}

	session, _, err := h.authService.OAuthLogin("google", userInfo.Subject, userInfo.Email, userInfo.Name)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Sign-in failed", "oauth login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, h.postLoginPath, http.StatusSeeOther)
}

type googleUserInfo struct {
	Subject string
	Email   string
	Name    string
}

func fetchGoogleUser(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return googleUserInfo{}, fmt.Errorf("failed to fetch Google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("Google user info returned %d", resp.StatusCode)
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return googleUserInfo{}, fmt.Errorf("failed to parse Google user info: %w", err)
	}

	return googleUserInfo{Subject: payload.ID, Email: payload.Email, Name: payload.Name}, nil
}

func (h *OAuthHandler) redirectURL(r *http.Request) string {
	baseURL := strings.TrimSpace(h.redirectBaseURL)
	if baseURL == "" {
		scheme := "http"
		if security.IsSecureRequest(r) {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return strings.TrimRight(baseURL, "/") + "/auth/google/callback"
}

func (h *OAuthHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

func (h *OAuthHandler) clearTempCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
