package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildPromptUserMoodTakesPrecedence(t *testing.T) {
	prompt, err := BuildPrompt(5, "anxious about work")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if !strings.Contains(prompt, "anxious about work") {
		t.Errorf("prompt %q does not include self-described mood", prompt)
	}
	if strings.Contains(prompt, "wonderful") {
		t.Errorf("prompt %q used the rating table despite a self-described mood", prompt)
	}
}

func TestBuildPromptPerRating(t *testing.T) {
	seen := make(map[string]bool)
	for rating := 1; rating <= 5; rating++ {
		prompt, err := BuildPrompt(rating, "")
		if err != nil {
			t.Fatalf("BuildPrompt(%d) error = %v", rating, err)
		}
		if prompt == "" {
			t.Fatalf("empty prompt for rating %d", rating)
		}
		if seen[prompt] {
			t.Errorf("rating %d reuses another rating's prompt", rating)
		}
		seen[prompt] = true
	}
}

func TestBuildPromptRequiresMoodInput(t *testing.T) {
	tests := []struct {
		name     string
		rating   int
		userMood string
	}{
		{"no rating, no mood", 0, ""},
		{"out of range rating", 9, ""},
		{"blank mood only", 0, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildPrompt(tt.rating, tt.userMood); !errors.Is(err, ErrMoodInputRequired) {
				t.Errorf("BuildPrompt() error = %v, want ErrMoodInputRequired", err)
			}
		})
	}
}

func TestGenerateRejectsMissingMoodInput(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream called despite missing mood input")
	}))
	defer upstream.Close()

	svc := NewAffirmationService("test-key", upstream.URL, "gpt-4o-mini")

	if _, err := svc.Generate(context.Background(), 0, ""); !errors.Is(err, ErrMoodInputRequired) {
		t.Errorf("Generate() error = %v, want ErrMoodInputRequired", err)
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode upstream request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  You are doing great.  "}},
			},
		})
	}))
	defer upstream.Close()

	svc := NewAffirmationService("test-key", upstream.URL, "gpt-4o-mini")

	text, err := svc.Generate(context.Background(), 4, "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "You are doing great." {
		t.Errorf("Generate() = %q, want trimmed affirmation", text)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", gotBody.Model)
	}
	if gotBody.MaxTokens != 100 {
		t.Errorf("max_tokens = %d, want 100", gotBody.MaxTokens)
	}
	if gotBody.Temperature != 0.8 {
		t.Errorf("temperature = %v, want 0.8", gotBody.Temperature)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Errorf("messages = %+v, want system then user", gotBody.Messages)
	}
}

func TestGenerateNotConfigured(t *testing.T) {
	svc := NewAffirmationService("", "https://api.openai.com/v1", "gpt-4o-mini")

	_, err := svc.Generate(context.Background(), 3, "")
	if !errors.Is(err, ErrAffirmationNotConfigured) {
		t.Errorf("Generate() error = %v, want ErrAffirmationNotConfigured", err)
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	svc := NewAffirmationService("test-key", upstream.URL, "gpt-4o-mini")

	if _, err := svc.Generate(context.Background(), 3, ""); err == nil {
		t.Error("Generate() succeeded against a failing upstream")
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer upstream.Close()

	svc := NewAffirmationService("test-key", upstream.URL, "gpt-4o-mini")

	_, err := svc.Generate(context.Background(), 3, "")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("Generate() error = %v, want ErrEmptyCompletion", err)
	}
}
