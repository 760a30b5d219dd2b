package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/clientwatch-team/clientwatch/pkg/config"
)

// GeminiClient is a minimal client for the Gemini generateContent API
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GEMINI_API_URL")
		if base == "" {
			base = "https://generativelanguage.googleapis.com"
		}
	}

	model := "gemini-2.5-flash"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured reports whether an API key is present
func (g *GeminiClient) IsConfigured() bool {
	return g != nil && g.apiKey != ""
}

// GenerateRequest is the shape for generateContent requests
type GenerateRequest struct {
	SystemInstruction *Content          `json:"system_instruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content is a single message of parts
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one text fragment
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig tunes the model call
type GenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

// Candidate is one generated answer
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateResponse is a minimal response shape
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// GenerateJSON sends a prompt expecting a JSON document back
func (g *GeminiClient) GenerateJSON(ctx context.Context, systemInstruction, prompt string, temperature float64) (string, error) {
	return g.generate(ctx, systemInstruction, prompt, temperature, "application/json")
}

// GenerateText sends a prompt expecting free-form prose back
func (g *GeminiClient) GenerateText(ctx context.Context, systemInstruction, prompt string, temperature float64) (string, error) {
	return g.generate(ctx, systemInstruction, prompt, temperature, "")
}

func (g *GeminiClient) generate(ctx context.Context, systemInstruction, prompt string, temperature float64, mimeType string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	reqBody := GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			Temperature:      temperature,
			ResponseMimeType: mimeType,
		},
	}
	if systemInstruction != "" {
		reqBody.SystemInstruction = &Content{Parts: []Part{{Text: systemInstruction}}}
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var gr GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
