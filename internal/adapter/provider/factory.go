package provider

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"devflow/config"
	"devflow/internal/port"
)

// FromConfig selects a provider once, at construction time. If the
// configured backend needs a credential that is absent from the
// environment, it falls back to the deterministic local provider
// instead of failing to start.
func FromConfig(cfg config.ProviderConfig) (port.Provider, error) {
	switch cfg.Name {
	case "", "together":
		apiKey := os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			logrus.Warnf("API key not set in %s; falling back to local analysis provider", cfg.APIKeyEnv)
			return NewLocal(), nil
		}
		logrus.Infof("Using together provider with model %s", cfg.Model)
		return NewTogether(apiKey, cfg.Model, cfg.Endpoint, cfg.MaxTokens), nil

	case "ollama":
		p, err := NewOllama(cfg.Endpoint, cfg.Model)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Using ollama provider with model %s", cfg.Model)
		return p, nil

	case "local":
		return NewLocal(), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}
}
