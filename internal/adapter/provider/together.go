package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devflow/internal/domain"
)

const (
	maxRetries       = 3
	rateLimitDelay   = 2 * time.Second
	defaultMaxTokens = 1000
)

// Together talks to a Together-AI-compatible completions endpoint. It
// is stateless per call; the embedded http.Client is safe for
// concurrent use.
type Together struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []completionChoice `json:"choices"`
	Error   *apiError          `json:"error,omitempty"`
}

type completionChoice struct {
	Text string `json:"text"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewTogether creates a provider for the given endpoint and model. The
// API key must already be resolved; see FromConfig for the
// environment-based construction path.
func NewTogether(apiKey, model, baseURL string, maxTokens int) *Together {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Together{
		apiKey:    apiKey,
		model:     model,
		baseURL:   baseURL,
		maxTokens: maxTokens,
		client:    &http.Client{},
	}
}

// Analyze sends the analysis prompt and decodes the model's JSON reply.
func (p *Together) Analyze(ctx context.Context, code string) (domain.AnalysisResult, error) {
	reply, err := p.complete(ctx, analysisPrompt(code))
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return parseAnalysis(reply)
}

// SuggestFixes asks the model for one remediation per finding.
func (p *Together) SuggestFixes(ctx context.Context, findings []domain.SecurityFinding) ([]string, error) {
	prompt, err := fixesPrompt(findings)
	if err != nil {
		return nil, err
	}
	reply, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseFixes(reply)
}

// Name identifies the provider.
func (p *Together) Name() string {
	return "together"
}

// complete performs the HTTP round trip, retrying only on rate limits.
func (p *Together) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := completionRequest{
		Model:       p.model,
		Prompt:      prompt,
		MaxTokens:   p.maxTokens,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(rateLimitDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/completions", bytes.NewReader(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+p.apiKey)

		resp, err := p.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (attempt %d/%d)", attempt+1, maxRetries)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}

		var compResp completionResponse
		if err := json.Unmarshal(body, &compResp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if compResp.Error != nil {
			return "", fmt.Errorf("API error: %s", compResp.Error.Message)
		}
		if len(compResp.Choices) == 0 {
			return "", fmt.Errorf("API returned no choices")
		}

		return compResp.Choices[0].Text, nil
	}

	return "", lastErr
}
