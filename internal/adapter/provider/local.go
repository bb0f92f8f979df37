package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devflow/internal/adapter/analyzer"
	"devflow/internal/domain"
)

// Local is a deterministic, offline analysis provider. It scans for a
// fixed set of risk patterns and derives scores from static metrics,
// so identical input always produces identical output. It backs tests
// and the no-credential fallback path.
type Local struct{}

// NewLocal creates a local provider.
func NewLocal() *Local {
	return &Local{}
}

type riskPattern struct {
	needle      string
	severity    domain.Severity
	description string
	fix         string
}

// Patterns are checked in order; findings inherit that order so output
// is reproducible.
var riskPatterns = []riskPattern{
	{"eval(", domain.SeverityCritical, "Dynamic code execution via eval()", "Remove eval() and use a safe dispatch table"},
	{"exec(", domain.SeverityCritical, "Dynamic code execution via exec()", "Remove exec() and validate input explicitly"},
	{"unsafe", domain.SeverityHigh, "Unsafe block bypasses language safety guarantees", "Isolate the unsafe block and document its invariants"},
	{"password =", domain.SeverityHigh, "Potential hardcoded credential", "Load secrets from the environment or a secret store"},
	{".unwrap()", domain.SeverityMedium, "Unchecked unwrap() may panic at runtime", "Propagate the error or provide a default"},
	{"TODO", domain.SeverityLow, "Unresolved TODO marker", "Resolve or track the TODO"},
}

type optimizationPattern struct {
	needle      string
	impact      float64
	description string
	hint        string
}

var optimizationPatterns = []optimizationPattern{
	{".clone()", 0.6, "Repeated clone() calls copy data unnecessarily", "Borrow instead of cloning where lifetimes allow"},
	{"+= ", 0.4, "String or slice accumulation in a loop", "Preallocate capacity or use a builder"},
	{"sleep(", 0.5, "Blocking sleep inside request handling", "Replace polling with an event or channel wait"},
}

// Analyze scores the code with static heuristics.
func (p *Local) Analyze(_ context.Context, code string) (domain.AnalysisResult, error) {
	metrics := analyzer.Measure(code)

	var security []domain.SecurityFinding
	for _, rp := range riskPatterns {
		for i := 0; i < strings.Count(code, rp.needle); i++ {
			security = append(security, domain.SecurityFinding{
				Severity:     rp.severity,
				Description:  rp.description,
				SuggestedFix: rp.fix,
			})
		}
	}

	var optimizations []domain.OptimizationFinding
	for _, op := range optimizationPatterns {
		if strings.Contains(code, op.needle) {
			optimizations = append(optimizations, domain.OptimizationFinding{
				Description:    op.description,
				Impact:         op.impact,
				Implementation: op.hint,
			})
		}
	}

	return domain.AnalysisResult{
		QualityScore:  qualityScore(metrics, security),
		Complexity:    metrics.Complexity,
		Security:      security,
		Optimizations: optimizations,
		AnalyzedAt:    time.Now().UTC(),
	}, nil
}

// qualityScore starts at 100 and subtracts a per-severity penalty plus
// a complexity penalty, clamped to [0,100].
func qualityScore(metrics domain.SourceMetrics, findings []domain.SecurityFinding) float64 {
	score := 100.0
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityCritical:
			score -= 25
		case domain.SeverityHigh:
			score -= 15
		case domain.SeverityMedium:
			score -= 8
		default:
			score -= 3
		}
	}
	score -= (metrics.Complexity - 1.0) * 5

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// SuggestFixes returns the canned remediation for each finding.
func (p *Local) SuggestFixes(_ context.Context, findings []domain.SecurityFinding) ([]string, error) {
	fixes := make([]string, 0, len(findings))
	for _, f := range findings {
		if f.SuggestedFix != "" {
			fixes = append(fixes, f.SuggestedFix)
			continue
		}
		fixes = append(fixes, fmt.Sprintf("Review and remediate: %s", f.Description))
	}
	return fixes, nil
}

// Name identifies the provider.
func (p *Local) Name() string {
	return "local"
}
