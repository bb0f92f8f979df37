package domain

import "time"

// Position is an editor coordinate: line and column are zero-based,
// offset is the byte offset from the start of the file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Range is a half-open span of text between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// AnalysisContext is the input to one analysis request. It is built by
// the caller and read-only for the duration of the request.
type AnalysisContext struct {
	FilePath     string
	Content      string
	Language     string
	Position     *Position
	VisibleRange *Range
}

// Severity of a security finding.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SecurityFinding is a single security observation from a provider call.
type SecurityFinding struct {
	Severity     Severity `json:"severity"`
	Description  string   `json:"description"`
	SuggestedFix string   `json:"suggested_fix,omitempty"`
}

// OptimizationFinding is a single optimization observation from a
// provider call. Impact is in [0,1].
type OptimizationFinding struct {
	Description    string  `json:"description"`
	Impact         float64 `json:"impact"`
	Implementation string  `json:"implementation,omitempty"`
}

// AnalysisResult is the structured output of one provider call.
// QualityScore is 0-100; Complexity is non-negative and grows with
// code size and nesting.
type AnalysisResult struct {
	QualityScore  float64               `json:"quality_score"`
	Complexity    float64               `json:"complexity"`
	Security      []SecurityFinding     `json:"security"`
	Optimizations []OptimizationFinding `json:"optimizations"`
	AnalyzedAt    time.Time             `json:"analyzed_at"`
}

// Category classifies a suggestion.
type Category string

const (
	CategoryQuality       Category = "quality"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryBestPractices Category = "best-practices"
)

// Suggestion is a finding projected onto an editor-addressable range
// with a confidence score in [0,1].
type Suggestion struct {
	Text       string   `json:"text"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Snippet    string   `json:"snippet,omitempty"`
	Range      *Range   `json:"range,omitempty"`
}

// MetricsSnapshot is the last known displayable summary of an analysis.
type MetricsSnapshot struct {
	Complexity float64 `json:"complexity"`
	Quality    float64 `json:"quality"`
}

// SourceMetrics are static, provider-independent measurements of a
// source file.
type SourceMetrics struct {
	LinesOfCode  int     `json:"lines_of_code"`
	BlankLines   int     `json:"blank_lines"`
	CommentLines int     `json:"comment_lines"`
	Complexity   float64 `json:"complexity"`
}

// FileReport pairs one analyzed file with its result.
type FileReport struct {
	Path     string          `json:"path"`
	Language string          `json:"language"`
	Metrics  SourceMetrics   `json:"metrics"`
	Result   *AnalysisResult `json:"result,omitempty"`
	Err      string          `json:"error,omitempty"`
}

// ProjectReport aggregates per-file reports for a whole directory.
type ProjectReport struct {
	Root          string         `json:"root"`
	Files         []FileReport   `json:"files"`
	FilesAnalyzed int            `json:"files_analyzed"`
	Languages     map[string]int `json:"languages"`
	SecurityCount int            `json:"security_count"`
	AvgQuality    float64        `json:"avg_quality"`
	Hotspots      []string       `json:"hotspots,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
}
