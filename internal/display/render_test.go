package display

import (
	"strings"
	"testing"

	"devflow/internal/domain"
)

func sampleReport() domain.ProjectReport {
	return domain.ProjectReport{
		Root:          "/tmp/project",
		FilesAnalyzed: 2,
		SecurityCount: 1,
		AvgQuality:    84.256,
		Languages:     map[string]int{"go": 2},
		Files: []domain.FileReport{
			{
				Path:     "main.go",
				Language: "go",
				Metrics:  domain.SourceMetrics{LinesOfCode: 10, CommentLines: 2, Complexity: 1.2},
				Result: &domain.AnalysisResult{
					QualityScore: 90,
					Security: []domain.SecurityFinding{
						{Severity: domain.SeverityHigh, Description: "hardcoded secret", SuggestedFix: "use env"},
					},
				},
			},
			{
				Path:     "broken.go",
				Language: "go",
				Err:      "backend down",
			},
		},
	}
}

func TestProjectText(t *testing.T) {
	out := ProjectText(sampleReport())

	for _, want := range []string{
		"DevFlow Analysis Report",
		"Files analyzed:    2",
		"84.26",
		"hardcoded secret",
		"fix: use env",
		"analysis failed: backend down",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q\n%s", want, out)
		}
	}
}

func TestSuggestions(t *testing.T) {
	suggestions := []domain.Suggestion{
		{
			Text:       "avoid repeated clone",
			Category:   domain.CategoryPerformance,
			Confidence: 0.8,
			Snippet:    "let x = &value;",
			Range: &domain.Range{
				Start: domain.Position{Line: 4, Column: 2},
				End:   domain.Position{Line: 4, Column: 42},
			},
		},
	}

	out := Suggestions(suggestions, "rust")

	if !strings.Contains(out, "avoid repeated clone") {
		t.Errorf("expected suggestion text, got\n%s", out)
	}
	if !strings.Contains(out, "confidence 0.80") {
		t.Errorf("expected confidence, got\n%s", out)
	}
	if !strings.Contains(out, "line 4 col 2-42") {
		t.Errorf("expected range label, got\n%s", out)
	}
}

func TestSuggestions_Empty(t *testing.T) {
	out := Suggestions(nil, "go")
	if !strings.Contains(out, "no suggestions") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestJSON(t *testing.T) {
	out, err := JSON(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"files_analyzed": 2`) {
		t.Errorf("expected JSON field, got\n%s", out)
	}
}
