package usecase

import (
	"testing"

	"devflow/internal/domain"
)

func TestMapSuggestions_Ordering(t *testing.T) {
	result := domain.AnalysisResult{
		QualityScore: 80,
		Optimizations: []domain.OptimizationFinding{
			{Description: "opt1"},
			{Description: "opt2"},
		},
		Security: []domain.SecurityFinding{
			{Severity: domain.SeverityHigh, Description: "sec1"},
		},
	}

	suggestions := MapSuggestions(result, domain.Position{Line: 3, Column: 5, Offset: 120})

	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}
	wantOrder := []string{"opt1", "opt2", "sec1"}
	for i, want := range wantOrder {
		if suggestions[i].Text != want {
			t.Errorf("position %d: expected %q, got %q", i, want, suggestions[i].Text)
		}
	}
	if suggestions[0].Category != domain.CategoryPerformance {
		t.Errorf("expected performance category, got %s", suggestions[0].Category)
	}
	if suggestions[2].Category != domain.CategorySecurity {
		t.Errorf("expected security category, got %s", suggestions[2].Category)
	}
}

func TestMapSuggestions_OrderingIsReproducible(t *testing.T) {
	result := domain.AnalysisResult{
		QualityScore: 50,
		Optimizations: []domain.OptimizationFinding{
			{Description: "a"}, {Description: "b"}, {Description: "c"},
		},
		Security: []domain.SecurityFinding{
			{Description: "x"}, {Description: "y"},
		},
	}
	anchor := domain.Position{Line: 1}

	first := MapSuggestions(result, anchor)
	second := MapSuggestions(result, anchor)

	if len(first) != len(second) {
		t.Fatal("lengths differ across runs")
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("position %d differs: %q vs %q", i, first[i].Text, second[i].Text)
		}
	}
}

func TestMapSuggestions_ConfidenceNormalization(t *testing.T) {
	result := domain.AnalysisResult{
		QualityScore: 85,
		Security:     []domain.SecurityFinding{{Description: "s"}},
	}

	suggestions := MapSuggestions(result, domain.Position{})

	if suggestions[0].Confidence != 0.85 {
		t.Errorf("expected confidence 0.85, got %f", suggestions[0].Confidence)
	}
}

func TestMapSuggestions_ConfidenceClamped(t *testing.T) {
	result := domain.AnalysisResult{
		QualityScore:  140,
		Optimizations: []domain.OptimizationFinding{{Description: "o"}},
	}

	suggestions := MapSuggestions(result, domain.Position{})

	if suggestions[0].Confidence != 1.0 {
		t.Errorf("expected confidence clamped to 1.0, got %f", suggestions[0].Confidence)
	}
}

func TestMapSuggestions_PlaceholderRange(t *testing.T) {
	result := domain.AnalysisResult{
		QualityScore: 60,
		Security:     []domain.SecurityFinding{{Description: "s"}},
	}
	anchor := domain.Position{Line: 10, Column: 4, Offset: 200}

	suggestions := MapSuggestions(result, anchor)

	r := suggestions[0].Range
	if r == nil {
		t.Fatal("expected a range")
	}
	if r.Start != anchor {
		t.Errorf("range must start at the anchor, got %+v", r.Start)
	}
	if r.End.Line != anchor.Line {
		t.Errorf("placeholder range must stay on the anchor line, got line %d", r.End.Line)
	}
	if r.End.Offset != anchor.Offset+suggestionSpan {
		t.Errorf("expected end offset %d, got %d", anchor.Offset+suggestionSpan, r.End.Offset)
	}
}

func TestMapSuggestions_Empty(t *testing.T) {
	suggestions := MapSuggestions(domain.AnalysisResult{QualityScore: 100}, domain.Position{})
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions for a clean result, got %d", len(suggestions))
	}
}
