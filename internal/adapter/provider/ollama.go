package provider

import (
	"context"
	"fmt"
	"net/url"

	ollama "github.com/JexSrs/go-ollama"

	"devflow/internal/domain"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama runs analyses against a local Ollama server. Useful when no
// hosted API key is available but a local model is.
type Ollama struct {
	client *ollama.Ollama
	model  string
}

// NewOllama creates a provider for the given host and model.
func NewOllama(host, model string) (*Ollama, error) {
	if host == "" {
		host = defaultOllamaHost
	}

	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	return &Ollama{
		client: ollama.New(*parsed),
		model:  model,
	}, nil
}

// Analyze sends the analysis prompt and decodes the model's JSON reply.
func (p *Ollama) Analyze(ctx context.Context, code string) (domain.AnalysisResult, error) {
	reply, err := p.generate(ctx, "You are an expert code reviewer.", analysisPrompt(code))
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return parseAnalysis(reply)
}

// SuggestFixes asks the model for one remediation per finding.
func (p *Ollama) SuggestFixes(ctx context.Context, findings []domain.SecurityFinding) ([]string, error) {
	prompt, err := fixesPrompt(findings)
	if err != nil {
		return nil, err
	}
	reply, err := p.generate(ctx, "You are a security remediation expert.", prompt)
	if err != nil {
		return nil, err
	}
	return parseFixes(reply)
}

// Name identifies the provider.
func (p *Ollama) Name() string {
	return "ollama"
}

func (p *Ollama) generate(ctx context.Context, system, prompt string) (string, error) {
	// The client library manages its own transport; honor caller
	// cancellation at the boundary.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, err := p.client.Generate(
		p.client.Generate.WithModel(p.model),
		p.client.Generate.WithSystem(system),
		p.client.Generate.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}

	if !res.Done {
		return "", fmt.Errorf("ollama response incomplete")
	}
	if res.Response == "" {
		return "", fmt.Errorf("ollama returned an empty response")
	}

	return res.Response, nil
}
