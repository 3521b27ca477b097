package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"mindcare/internal/models"
	"mindcare/internal/security"
	"mindcare/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
	}
}

// RequireAuth requires a valid bearer token or session cookie. The resolved
// user is placed on the request context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.resolveUser(r)
		if user == nil {
			respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) resolveUser(r *http.Request) *models.User {
	// Bearer token first, cookie as fallback for browser clients
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		user, err := m.authService.ValidateToken(strings.TrimPrefix(auth, "Bearer "))
		if err == nil {
			return user
		}
		return nil
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	user, err := m.authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

// RateLimit rejects clients that exceed the configured request rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
