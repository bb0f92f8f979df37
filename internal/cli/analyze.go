package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"devflow/internal/adapter/analyzer"
	"devflow/internal/adapter/fs"
	"devflow/internal/display"
	"devflow/internal/domain"
	"devflow/internal/usecase"
)

var (
	analyzeFormat string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a file or project",
	Long: `Analyze a single file or a whole directory tree. Directory walks are
filtered by the configured include/exclude patterns and file-size cap.

Examples:
  devflow analyze .                # Analyze current directory
  devflow analyze src/main.rs      # Analyze one file
  devflow analyze . -f json -o report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format (text or json)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write report to file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}

	session, cleanup, err := newSession(dir)
	if err != nil {
		return err
	}
	defer cleanup()

	var report domain.ProjectReport
	if info.IsDir() {
		report, err = analyzeDirectory(cmd, session, path)
	} else {
		report, err = analyzeSingleFile(cmd, session, path)
	}
	if err != nil {
		return err
	}

	return writeReport(report)
}

func analyzeDirectory(cmd *cobra.Command, session *usecase.Session, path string) (domain.ProjectReport, error) {
	walker := fs.NewWalker(cfg.Walk.Includes, cfg.Walk.Excludes, cfg.Walk.MaxFileSize)
	project := usecase.NewProjectUseCase(session, walker)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Analyzing[reset]"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
	)

	report, err := project.AnalyzeProject(cmd.Context(), path, func(fs.SourceFile) {
		bar.Add(1)
	})
	bar.Finish()
	fmt.Fprintln(cmd.ErrOrStderr())

	return report, err
}

func analyzeSingleFile(cmd *cobra.Command, session *usecase.Session, path string) (domain.ProjectReport, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return domain.ProjectReport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	language := fs.DetectLanguage(path)
	fr := domain.FileReport{
		Path:     filepath.Base(path),
		Language: language,
		Metrics:  analyzer.Measure(content),
	}

	result, err := session.Analyze(cmd.Context(), domain.AnalysisContext{
		FilePath: path,
		Content:  content,
		Language: language,
	})
	if err != nil {
		return domain.ProjectReport{}, err
	}
	fr.Result = &result

	report := domain.ProjectReport{
		Root:      path,
		Files:     []domain.FileReport{fr},
		Languages: map[string]int{language: 1},
	}
	report.FilesAnalyzed = 1
	report.SecurityCount = len(result.Security)
	report.AvgQuality = result.QualityScore
	return report, nil
}

func writeReport(report domain.ProjectReport) error {
	var rendered string
	var err error

	switch analyzeFormat {
	case "json":
		rendered, err = display.JSON(report)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	case "text":
		rendered = display.ProjectText(report)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", analyzeFormat)
	}

	if analyzeOutput != "" {
		return os.WriteFile(analyzeOutput, []byte(rendered), 0644)
	}
	fmt.Println(rendered)
	return nil
}
