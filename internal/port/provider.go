package port

import (
	"context"

	"devflow/internal/domain"
)

// Provider turns code text into a structured analysis result. An
// implementation must be safe for concurrent use; it holds no mutable
// per-call state, or synchronizes internally. Cancellation and
// deadlines arrive through ctx — the provider itself imposes no
// timeout of its own.
type Provider interface {
	// Analyze scores the given code and collects findings.
	Analyze(ctx context.Context, code string) (domain.AnalysisResult, error)

	// SuggestFixes proposes remediations for known security findings.
	SuggestFixes(ctx context.Context, findings []domain.SecurityFinding) ([]string, error)

	// Name identifies the provider for logs and reports.
	Name() string
}

// ContentFetcher resolves a file path to its current content. The
// orchestrator owns no file I/O; callers wire in os.ReadFile or an
// editor-buffer lookup.
type ContentFetcher func(path string) (string, error)

// ResultStore persists analysis results keyed by content hash.
type ResultStore interface {
	PutResult(key string, result domain.AnalysisResult) error

	GetResult(key string) (domain.AnalysisResult, bool, error)

	Close() error
}
