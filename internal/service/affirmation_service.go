package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrAffirmationNotConfigured = errors.New("affirmation provider not configured")
	ErrEmptyCompletion          = errors.New("affirmation provider returned no text")
	ErrMoodInputRequired        = errors.New("either a mood rating between 1 and 5 or a mood description is required")
)

const systemPrompt = "You are a compassionate mental wellness companion. Generate short, " +
	"personalized affirmations that are warm, encouraging, and specific to the person's " +
	"emotional state. Keep responses to 1-2 sentences. Never give medical advice."

// moodPrompts maps a mood rating to the user prompt sent upstream when the
// person did not describe their mood in their own words.
var moodPrompts = map[int]string{
	1: "I'm feeling very low and struggling today. Please give me a gentle, compassionate affirmation.",
	2: "I'm feeling down today. Please give me a supportive affirmation to help lift my spirits.",
	3: "I'm feeling okay, neither good nor bad. Please give me an encouraging affirmation.",
	4: "I'm feeling good today. Please give me an affirmation to keep this positive momentum going.",
	5: "I'm feeling wonderful today! Please give me an affirmation that celebrates this joy.",
}

// AffirmationService generates personalized affirmations through an
// OpenAI-compatible chat completions endpoint
type AffirmationService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewAffirmationService creates a new affirmation service
func NewAffirmationService(apiKey, baseURL, model string) *AffirmationService {
	return &AffirmationService{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured reports whether an API key is available
func (s *AffirmationService) IsConfigured() bool {
	return s.apiKey != ""
}

// BuildPrompt selects the upstream user prompt. A self-described mood takes
// precedence over the numeric rating; with neither, there is nothing to
// personalize and the request is rejected.
func BuildPrompt(moodRating int, userMood string) (string, error) {
	if mood := strings.TrimSpace(userMood); mood != "" {
		return fmt.Sprintf("I'm feeling %s today. Please give me a personalized, supportive affirmation.", mood), nil
	}
	if prompt, ok := moodPrompts[moodRating]; ok {
		return prompt, nil
	}
	return "", ErrMoodInputRequired
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate requests an affirmation for the given mood. Any upstream failure
// comes back as an error; callers decide whether to substitute a fallback.
func (s *AffirmationService) Generate(ctx context.Context, moodRating int, userMood string) (string, error) {
	prompt, err := BuildPrompt(moodRating, userMood)
	if err != nil {
		return "", err
	}
	if !s.IsConfigured() {
		return "", ErrAffirmationNotConfigured
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   100,
		Temperature: 0.8,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
