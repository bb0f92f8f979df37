package usecase

import (
	"devflow/internal/domain"
)

// suggestionSpan is the width, in columns and bytes, of the
// placeholder range attached to each suggestion. The provider does not
// return token-accurate source ranges, so suggestions are anchored at
// the request position with a fixed-width span rather than a real
// token boundary. A semantic analyzer would be needed for true spans.
const suggestionSpan = 40

// MapSuggestions projects an analysis result onto range-anchored
// suggestions around the given position. Optimization findings come
// first as performance suggestions, then security findings, each group
// in the provider's original order. Confidence is the quality score
// normalized to [0,1]. The function is pure: no filtering, no I/O, no
// shared state.
func MapSuggestions(result domain.AnalysisResult, anchor domain.Position) []domain.Suggestion {
	confidence := result.QualityScore / 100
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	suggestions := make([]domain.Suggestion, 0, len(result.Optimizations)+len(result.Security))

	for _, opt := range result.Optimizations {
		suggestions = append(suggestions, domain.Suggestion{
			Text:       opt.Description,
			Category:   domain.CategoryPerformance,
			Confidence: confidence,
			Snippet:    opt.Implementation,
			Range:      placeholderRange(anchor),
		})
	}

	for _, sec := range result.Security {
		suggestions = append(suggestions, domain.Suggestion{
			Text:       sec.Description,
			Category:   domain.CategorySecurity,
			Confidence: confidence,
			Snippet:    sec.SuggestedFix,
			Range:      placeholderRange(anchor),
		})
	}

	return suggestions
}

func placeholderRange(anchor domain.Position) *domain.Range {
	return &domain.Range{
		Start: anchor,
		End: domain.Position{
			Line:   anchor.Line,
			Column: anchor.Column + suggestionSpan,
			Offset: anchor.Offset + suggestionSpan,
		},
	}
}
