package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the devflow tool.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Provider ProviderConfig `yaml:"provider"`
	Walk     WalkConfig     `yaml:"walk"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig holds orchestration tunables.
type AnalysisConfig struct {
	MaxConcurrentAnalyses int      `yaml:"max_concurrent_analyses"`
	ConfidenceThreshold   float64  `yaml:"confidence_threshold"`
	AnalysisTypes         []string `yaml:"analysis_types"` // enabled categories
	EnableRealTime        bool     `yaml:"enable_real_time"`
	CacheResults          bool     `yaml:"cache_results"`
}

// ProviderConfig selects and parameterizes the analysis backend.
type ProviderConfig struct {
	Name      string `yaml:"name"`        // "together", "ollama", "local"
	Model     string `yaml:"model"`       // e.g. "mistralai/Mistral-7B-Instruct-v0.1"
	Endpoint  string `yaml:"endpoint"`    // base URL for HTTP providers
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	MaxTokens int    `yaml:"max_tokens"`
}

// WalkConfig holds project-walk configuration.
type WalkConfig struct {
	Includes    []string `yaml:"includes"`
	Excludes    []string `yaml:"excludes"`
	MaxFileSize int64    `yaml:"max_file_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	Output string `yaml:"output"` // "stdout", "stderr", or a file path
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxConcurrentAnalyses: 4,
			ConfidenceThreshold:   0.0,
			AnalysisTypes:         []string{"quality", "security", "performance", "best-practices"},
			EnableRealTime:        false,
			CacheResults:          true,
		},
		Provider: ProviderConfig{
			Name:      "together",
			Model:     "mistralai/Mistral-7B-Instruct-v0.1",
			Endpoint:  "https://api.together.xyz/v1",
			APIKeyEnv: "TOGETHER_API_KEY",
			MaxTokens: 1000,
		},
		Walk: WalkConfig{
			Includes:    []string{"**/*.go", "**/*.py", "**/*.js", "**/*.ts", "**/*.java", "**/*.c", "**/*.cpp", "**/*.h", "**/*.rs"},
			Excludes:    []string{"**/node_modules/**", "**/vendor/**", "**/.git/**", "**/dist/**", "**/build/**", "**/target/**", "**/__pycache__/**", "**/*.min.js"},
			MaxFileSize: 1 << 20, // 1MB
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Validate checks the parts of the configuration the orchestrator
// depends on.
func (c *Config) Validate() error {
	if c.Analysis.MaxConcurrentAnalyses < 1 {
		return fmt.Errorf("max_concurrent_analyses must be positive, got %d", c.Analysis.MaxConcurrentAnalyses)
	}
	if c.Analysis.ConfidenceThreshold < 0 || c.Analysis.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0,1], got %g", c.Analysis.ConfidenceThreshold)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for devflow.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "devflow.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".devflow", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResultDBPath returns the path to the cached-results database.
func ResultDBPath(dir string) string {
	return filepath.Join(dir, ".devflow", "results.db")
}

// EnsureDevflowDir ensures the .devflow directory exists.
func EnsureDevflowDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".devflow"), 0755)
}
