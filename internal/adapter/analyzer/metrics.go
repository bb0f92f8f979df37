package analyzer

import (
	"strings"

	"devflow/internal/domain"
)

// branchKeywords are counted as one decision point each. The estimate
// is language-generic on purpose; real token-level analysis belongs to
// a semantic analyzer, not this adapter.
var branchKeywords = []string{"if ", "while ", "for ", "match ", "switch ", "case "}

// Measure computes static metrics for a source file: line counts and a
// branch-based complexity estimate. Complexity starts at 1.0 and grows
// by 0.1 per decision point, so it is monotonic in code size and
// nesting depth.
func Measure(content string) domain.SourceMetrics {
	var m domain.SourceMetrics

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			m.BlankLines++
		case isComment(trimmed):
			m.CommentLines++
		}
		m.LinesOfCode++
	}

	branches := 0
	for _, kw := range branchKeywords {
		branches += strings.Count(content, kw)
	}
	m.Complexity = 1.0 + 0.1*float64(branches)

	return m
}

func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// Dependencies extracts a sorted, deduplicated list of imported
// top-level modules using line-prefix heuristics that cover Rust,
// Python, JavaScript/TypeScript and Go import syntax.
func Dependencies(content string) []string {
	seen := make(map[string]bool)
	var deps []string

	add := func(dep string) {
		dep = strings.TrimSpace(dep)
		if dep != "" && !seen[dep] {
			seen[dep] = true
			deps = append(deps, dep)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "use "):
			rest := strings.TrimPrefix(trimmed, "use ")
			add(strings.TrimSuffix(strings.SplitN(rest, "::", 2)[0], ";"))
		case strings.HasPrefix(trimmed, "from "), strings.HasPrefix(trimmed, "import "):
			fields := strings.Fields(trimmed)
			if len(fields) > 1 {
				name := strings.Trim(fields[1], `"';()`)
				add(strings.SplitN(name, ".", 2)[0])
			}
		case strings.Contains(trimmed, "require("):
			rest := strings.SplitN(trimmed, "require(", 2)[1]
			add(strings.SplitN(strings.Trim(rest, `"');`), "/", 2)[0])
		}
	}

	return deps
}
