package provider

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"devflow/internal/domain"
)

// analysisPrompt instructs the model to reply with machine-parseable
// JSON. Both HTTP providers share it so their output shape is
// identical.
func analysisPrompt(code string) string {
	return fmt.Sprintf(`You are an expert code reviewer. Analyze the following code and respond with a single JSON object and nothing else. The object must have these fields:
- "quality_score": number from 0 to 100
- "complexity": non-negative number, higher for larger and more nested code
- "security": array of {"severity": "low"|"medium"|"high"|"critical", "description": string, "suggested_fix": string}
- "optimizations": array of {"description": string, "impact": number from 0 to 1, "implementation": string}

Code:
%s`, code)
}

func fixesPrompt(findings []domain.SecurityFinding) (string, error) {
	encoded, err := json.Marshal(findings)
	if err != nil {
		return "", fmt.Errorf("failed to encode findings: %w", err)
	}
	return fmt.Sprintf(`Given these security findings in JSON format:
%s

Provide one specific code fix per finding. Respond with a JSON array of strings and nothing else.`, encoded), nil
}

type analysisResponse struct {
	QualityScore  float64 `json:"quality_score"`
	Complexity    float64 `json:"complexity"`
	Security      []struct {
		Severity     string `json:"severity"`
		Description  string `json:"description"`
		SuggestedFix string `json:"suggested_fix"`
	} `json:"security"`
	Optimizations []struct {
		Description    string  `json:"description"`
		Impact         float64 `json:"impact"`
		Implementation string  `json:"implementation"`
	} `json:"optimizations"`
}

// parseAnalysis decodes a model reply into an AnalysisResult. Models
// sometimes wrap JSON in markdown fences; those are stripped first.
func parseAnalysis(reply string) (domain.AnalysisResult, error) {
	cleaned := stripFences(reply)

	var resp analysisResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		preview := cleaned
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return domain.AnalysisResult{}, fmt.Errorf("malformed analysis response (body: %s): %w", preview, err)
	}

	if resp.QualityScore < 0 || resp.QualityScore > 100 {
		return domain.AnalysisResult{}, fmt.Errorf("quality score %g outside [0,100]", resp.QualityScore)
	}
	if resp.Complexity < 0 {
		return domain.AnalysisResult{}, fmt.Errorf("negative complexity %g", resp.Complexity)
	}

	result := domain.AnalysisResult{
		QualityScore: resp.QualityScore,
		Complexity:   resp.Complexity,
		AnalyzedAt:   time.Now().UTC(),
	}
	for _, s := range resp.Security {
		result.Security = append(result.Security, domain.SecurityFinding{
			Severity:     parseSeverity(s.Severity),
			Description:  s.Description,
			SuggestedFix: s.SuggestedFix,
		})
	}
	for _, o := range resp.Optimizations {
		result.Optimizations = append(result.Optimizations, domain.OptimizationFinding{
			Description:    o.Description,
			Impact:         o.Impact,
			Implementation: o.Implementation,
		})
	}
	return result, nil
}

func parseFixes(reply string) ([]string, error) {
	cleaned := stripFences(reply)

	var fixes []string
	if err := json.Unmarshal([]byte(cleaned), &fixes); err != nil {
		return nil, fmt.Errorf("malformed fixes response: %w", err)
	}
	return fixes, nil
}

func parseSeverity(s string) domain.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return domain.SeverityCritical
	case "high":
		return domain.SeverityHigh
	case "medium":
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

func stripFences(reply string) string {
	cleaned := strings.TrimSpace(reply)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
