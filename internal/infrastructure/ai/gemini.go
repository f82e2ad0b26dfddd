// Package ai talks to the Gemini generateContent REST endpoint.
package ai

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

	"github.com/tidwall/gjson"
)

// ErrAINotConfigured is returned by Suggest when no API key is set.
var ErrAINotConfigured = errors.New("ai: api key not configured")

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

const promptTemplate = `You are a compassionate AI wellness coach. Based on the user's mood or feelings,
provide a short, actionable wellness suggestion (1-3 sentences). Focus on practical, immediate actions
they can take to feel better. Keep suggestions simple, positive, and achievable within 5-10 minutes.

Examples of good suggestions:
- "Take five deep breaths and stretch for two minutes"
- "Step outside for a short walk and notice three beautiful things around you"
- "Try the 4-7-8 breathing technique: breathe in for 4, hold for 7, exhale for 8"

User feeling: %s
%s
Provide only the wellness suggestion, no additional formatting.`

// Config holds Gemini client settings. Empty fields get defaults.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiClient implements ports.SuggestionGenerator.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates a client. A client without an API key is valid; it
// fails every call with ErrAINotConfigured.
func NewGeminiClient(cfg Config) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GeminiClient{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// Suggest asks the model for a short wellness suggestion and returns the
// trimmed text of the first candidate.
func (c *GeminiClient) Suggest(ctx context.Context, mood, nutrition string) (string, error) {
	if !c.Configured() {
		return "", ErrAINotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(mood, nutrition)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := gjson.GetBytes(respBody, "error.message").String()
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("gemini: %d: %s", resp.StatusCode, msg)
	}

	text := strings.TrimSpace(gjson.GetBytes(respBody, "candidates.0.content.parts.0.text").String())
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}

// BuildPrompt renders the coaching prompt. The nutrition line is only added
// when the user supplied one.
func BuildPrompt(mood, nutrition string) string {
	var extra string
	if n := strings.TrimSpace(nutrition); n != "" {
		extra = "User nutrition today: " + n + "\n"
	}
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(mood), extra)
}
