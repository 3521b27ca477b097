package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mindcare/internal/models"
	"mindcare/internal/retry"
	"mindcare/internal/service"
)

func withUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), UserContextKey, user)
	return r.WithContext(ctx)
}

func testRetryConfig() retry.Config {
	return retry.Config{Timeout: time.Second, MaxRetries: 0, RetryDelay: time.Millisecond}
}

func TestRequireAuthRejectsMissingCredentials(t *testing.T) {
	m := NewMiddleware(nil, nil)

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler called without credentials")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/moods", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] == "" {
		t.Error("response carries no error field")
	}
}

func TestSubmitRejectsInvalidRating(t *testing.T) {
	// Validation fires before any repository access, so a nil-backed
	// service is safe here
	journal := service.NewJournalService(nil, nil, testRetryConfig())
	h := NewMoodHandler(journal)

	req := httptest.NewRequest("POST", "/api/moods", strings.NewReader(`{"moodRating": 0}`))
	req = withUser(req, &models.User{ID: 1})

	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["field"] != "moodRating" {
		t.Errorf("field = %q, want moodRating", body["field"])
	}
}

func TestSubmitRejectsMalformedJSON(t *testing.T) {
	journal := service.NewJournalService(nil, nil, testRetryConfig())
	h := NewMoodHandler(journal)

	req := httptest.NewRequest("POST", "/api/moods", strings.NewReader(`{"moodRating": `))
	req = withUser(req, &models.User{ID: 1})

	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGoalCreateRejectsInvalidPayload(t *testing.T) {
	goalService := service.NewGoalService(nil, nil)
	h := NewGoalHandler(goalService)

	req := httptest.NewRequest("POST", "/api/goals",
		strings.NewReader(`{"title": "x", "goalType": "bogus", "targetValue": 5}`))
	req = withUser(req, &models.User{ID: 1})

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["field"] != "goalType" {
		t.Errorf("field = %q, want goalType", body["field"])
	}
}

func TestAffirmationPreflight(t *testing.T) {
	h := NewAffirmationHandler(service.NewAffirmationService("", "", ""))

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest("OPTIONS", "/api/affirmations", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing open CORS header on preflight")
	}
}

func TestAffirmationProxySuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Breathe. You have this."}},
			},
		})
	}))
	defer upstream.Close()

	h := NewAffirmationHandler(service.NewAffirmationService("key", upstream.URL, "gpt-4o-mini"))

	req := httptest.NewRequest("POST", "/api/affirmations", strings.NewReader(`{"moodRating": 2}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["affirmation"] != "Breathe. You have this." {
		t.Errorf("affirmation = %q", body["affirmation"])
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing open CORS header on POST")
	}
}

func TestAffirmationProxyUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer upstream.Close()

	h := NewAffirmationHandler(service.NewAffirmationService("key", upstream.URL, "gpt-4o-mini"))

	req := httptest.NewRequest("POST", "/api/affirmations", strings.NewReader(`{"moodRating": 3}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] == "" {
		t.Error("response carries no error field")
	}
}

func TestAffirmationProxyRejectsEmptyInput(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream called despite missing mood input")
	}))
	defer upstream.Close()

	h := NewAffirmationHandler(service.NewAffirmationService("key", upstream.URL, "gpt-4o-mini"))

	req := httptest.NewRequest("POST", "/api/affirmations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] == "" {
		t.Error("response carries no error field")
	}
}

func TestAffirmationProxyMissingKey(t *testing.T) {
	h := NewAffirmationHandler(service.NewAffirmationService("", "https://api.openai.com/v1", "gpt-4o-mini"))

	req := httptest.NewRequest("POST", "/api/affirmations", strings.NewReader(`{"moodRating": 3}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
