package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"devflow/internal/adapter/fs"
	"devflow/internal/display"
	"devflow/internal/domain"
)

var (
	suggestLine   int
	suggestCol    int
	suggestFormat string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Get improvement suggestions at a cursor position",
	Long: `Analyze the file and print range-anchored suggestions around the given
cursor position, ordered with performance suggestions before security ones.

Examples:
  devflow suggest main.go --line 12
  devflow suggest src/lib.rs --line 40 --col 8 -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVar(&suggestLine, "line", 0, "cursor line (zero-based)")
	suggestCmd.Flags().IntVar(&suggestCol, "col", 0, "cursor column (zero-based)")
	suggestCmd.Flags().StringVarP(&suggestFormat, "format", "f", "text", "output format (text or json)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	content, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	session, cleanup, err := newSession(filepath.Dir(path))
	if err != nil {
		return err
	}
	defer cleanup()

	language := fs.DetectLanguage(path)
	pos := domain.Position{Line: suggestLine, Column: suggestCol, Offset: offsetFor(content, suggestLine, suggestCol)}

	// Establish the file as the active session file, then request
	// suggestions at the cursor.
	if _, err := session.Analyze(cmd.Context(), domain.AnalysisContext{
		FilePath: path,
		Content:  content,
		Language: language,
		Position: &pos,
	}); err != nil {
		return err
	}

	suggestions, err := session.SuggestionsAt(cmd.Context(), pos)
	if err != nil {
		return err
	}

	if suggestFormat == "json" {
		rendered, err := display.JSON(suggestions)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}

	fmt.Print(display.Suggestions(suggestions, language))
	return nil
}

// offsetFor converts a line/column pair to a byte offset, clamping to
// the end of the content.
func offsetFor(content string, line, col int) int {
	offset := 0
	for l := 0; l < line && offset < len(content); l++ {
		for offset < len(content) && content[offset] != '\n' {
			offset++
		}
		if offset < len(content) {
			offset++ // consume the newline
		}
	}
	offset += col
	if offset > len(content) {
		offset = len(content)
	}
	return offset
}
