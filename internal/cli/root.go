package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"devflow/config"
	"devflow/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "devflow",
	Short: "DevFlow - AI-assisted code analysis for your editor and terminal",
	Long: `DevFlow analyzes source code with a pluggable AI backend and turns the
findings into confidence-scored, range-anchored improvement suggestions.

Example usage:
  devflow analyze .                      # Analyze the current project
  devflow analyze main.go                # Analyze a single file
  devflow suggest main.go --line 12      # Suggestions at a cursor position
  devflow status main.go                 # Quality/complexity summary`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logging.Init(cfg.Logging)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./devflow.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
