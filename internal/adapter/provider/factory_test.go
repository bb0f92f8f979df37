package provider

import (
	"testing"

	"devflow/config"
)

func TestFromConfig_FallsBackWithoutKey(t *testing.T) {
	t.Setenv("DEVFLOW_TEST_API_KEY", "")

	p, err := FromConfig(config.ProviderConfig{
		Name:      "together",
		APIKeyEnv: "DEVFLOW_TEST_API_KEY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "local" {
		t.Errorf("expected fallback to local provider, got %s", p.Name())
	}
}

func TestFromConfig_TogetherWithKey(t *testing.T) {
	t.Setenv("DEVFLOW_TEST_API_KEY", "k-123")

	p, err := FromConfig(config.ProviderConfig{
		Name:      "together",
		Model:     "mistralai/Mistral-7B-Instruct-v0.1",
		Endpoint:  "https://api.together.xyz/v1",
		APIKeyEnv: "DEVFLOW_TEST_API_KEY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "together" {
		t.Errorf("expected together provider, got %s", p.Name())
	}
}

func TestFromConfig_Local(t *testing.T) {
	p, err := FromConfig(config.ProviderConfig{Name: "local"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "local" {
		t.Errorf("expected local provider, got %s", p.Name())
	}
}

func TestFromConfig_Unknown(t *testing.T) {
	if _, err := FromConfig(config.ProviderConfig{Name: "quantum"}); err == nil {
		t.Error("expected error for unknown provider name")
	}
}
