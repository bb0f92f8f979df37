package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"devflow/internal/adapter/fs"
	"devflow/internal/display"
	"devflow/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status <file>",
	Short: "Print the quality/complexity summary for a file",
	Long: `Analyze the file (served from the result cache when unchanged) and print
the one-line metrics summary an editor would show in its status bar.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	if _, err := session.Analyze(cmd.Context(), domain.AnalysisContext{
		FilePath: path,
		Content:  content,
		Language: fs.DetectLanguage(path),
	}); err != nil {
		return err
	}

	fmt.Println(display.StatusText(session.StatusSummary()))
	return nil
}
