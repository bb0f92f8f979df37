package display

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"devflow/internal/domain"
)

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorOrange = lipgloss.Color("#ffb86c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorDim    = lipgloss.Color("#6272a4")
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	scoreStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	severityStyles = map[domain.Severity]lipgloss.Style{
		domain.SeverityCritical: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		domain.SeverityHigh:     lipgloss.NewStyle().Foreground(colorRed),
		domain.SeverityMedium:   lipgloss.NewStyle().Foreground(colorOrange),
		domain.SeverityLow:      lipgloss.NewStyle().Foreground(colorYellow),
	}
)

// ProjectText renders a full project report for the terminal.
func ProjectText(report domain.ProjectReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DevFlow Analysis Report"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(report.Root))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Files analyzed:    %d\n", report.FilesAnalyzed)
	fmt.Fprintf(&b, "  Security findings: %d\n", report.SecurityCount)
	fmt.Fprintf(&b, "  Average quality:   %s\n", scoreStyle.Render(fmt.Sprintf("%.2f", report.AvgQuality)))

	if len(report.Hotspots) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Hotspots"))
		b.WriteString("\n")
		for _, path := range report.Hotspots {
			fmt.Fprintf(&b, "  %s\n", path)
		}
	}

	if len(report.Languages) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Languages"))
		b.WriteString("\n")
		for lang, count := range report.Languages {
			fmt.Fprintf(&b, "  %-12s %d\n", lang, count)
		}
	}

	for _, fr := range report.Files {
		b.WriteString("\n")
		b.WriteString(FileText(fr))
	}

	return b.String()
}

// FileText renders one file's report section.
func FileText(fr domain.FileReport) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fr.Path))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", fr.Language)))
	b.WriteString("\n")

	if fr.Err != "" {
		fmt.Fprintf(&b, "  analysis failed: %s\n", fr.Err)
		return b.String()
	}

	fmt.Fprintf(&b, "  Lines: %d  Comments: %d  Complexity: %.2f\n",
		fr.Metrics.LinesOfCode, fr.Metrics.CommentLines, fr.Metrics.Complexity)

	if fr.Result == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "  Quality: %s\n", scoreStyle.Render(fmt.Sprintf("%.2f", fr.Result.QualityScore)))

	for _, f := range fr.Result.Security {
		style, ok := severityStyles[f.Severity]
		if !ok {
			style = dimStyle
		}
		fmt.Fprintf(&b, "  %s %s\n", style.Render(fmt.Sprintf("[%s]", f.Severity)), f.Description)
		if f.SuggestedFix != "" {
			fmt.Fprintf(&b, "      %s\n", dimStyle.Render("fix: "+f.SuggestedFix))
		}
	}
	for _, o := range fr.Result.Optimizations {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("[opt %.1f]", o.Impact)), o.Description)
	}

	return b.String()
}

// Suggestions renders suggestion output for a cursor position, with
// syntax-highlighted snippets when a language is known.
func Suggestions(suggestions []domain.Suggestion, language string) string {
	if len(suggestions) == 0 {
		return dimStyle.Render("no suggestions") + "\n"
	}

	var b strings.Builder
	for i, sg := range suggestions {
		fmt.Fprintf(&b, "%s %s ",
			headerStyle.Render(fmt.Sprintf("%d.", i+1)),
			categoryStyle(sg.Category).Render(string(sg.Category)))
		fmt.Fprintf(&b, "%s\n", sg.Text)
		fmt.Fprintf(&b, "   %s\n", dimStyle.Render(fmt.Sprintf("confidence %.2f, %s", sg.Confidence, rangeLabel(sg.Range))))

		if sg.Snippet != "" {
			b.WriteString(indent(highlightSnippet(sg.Snippet, language), "   "))
		}
	}
	return b.String()
}

// StatusText renders the status-bar summary line.
func StatusText(summary string) string {
	return titleStyle.Render("devflow") + " " + summary
}

// JSON renders any report value as indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func categoryStyle(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategorySecurity:
		return severityStyles[domain.SeverityHigh]
	case domain.CategoryPerformance:
		return lipgloss.NewStyle().Foreground(colorOrange)
	default:
		return lipgloss.NewStyle().Foreground(colorGreen)
	}
}

func rangeLabel(r *domain.Range) string {
	if r == nil {
		return "unanchored"
	}
	return fmt.Sprintf("line %d col %d-%d", r.Start.Line, r.Start.Column, r.End.Column)
}

// highlightSnippet syntax-highlights a code snippet for the terminal,
// falling back to plain text for unknown languages.
func highlightSnippet(snippet, language string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, snippet, language, "terminal256", "monokai"); err != nil {
		return snippet + "\n"
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
