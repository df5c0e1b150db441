package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestParseProviders(t *testing.T) {
	t.Setenv("TEST_GROQ_KEY", "gsk-123")

	raw := []any{
		map[string]any{"name": "groq", "enabled": true, "priority": 1, "api_key": "${TEST_GROQ_KEY}", "model": "llama-3.1-8b-instant"},
		map[any]any{"name": "gemini", "enabled": "false", "priority": "2", "api_key": "plain", "model": "gemini-2.5-flash"},
		"not a map",
	}

	got := parseProviders(raw)
	if len(got) != 2 {
		t.Fatalf("parseProviders() returned %d providers, want 2", len(got))
	}
	if got[0].APIKey != "gsk-123" || !got[0].Enabled || got[0].Priority != 1 {
		t.Errorf("groq = %+v", got[0])
	}
	if got[1].Enabled || got[1].Priority != 2 || got[1].APIKey != "plain" {
		t.Errorf("gemini = %+v", got[1])
	}
}

func TestExpandEnvVar(t *testing.T) {
	viper.Reset()
	t.Setenv("TEST_ADMIN_TOKEN", "s3cret")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"literal", "literal"},
		{"${TEST_ADMIN_TOKEN}", "s3cret"},
		{"${TEST_UNSET_VARIABLE}", ""},
	}
	for _, tt := range tests {
		if got := expandEnvVar(tt.in); got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "sqlite"},
			NLU:      NLUConfig{HighThreshold: 0.8, NoiseFloor: 0.1},
		}
	}

	if err := validate(base()); err != nil {
		t.Errorf("valid config: %v", err)
	}

	cfg := base()
	cfg.Database.Driver = "mysql"
	if err := validate(cfg); err == nil {
		t.Error("expected driver error")
	}

	cfg = base()
	cfg.NLU.NoiseFloor = 0.9
	if err := validate(cfg); err == nil {
		t.Error("expected threshold error")
	}

	cfg = base()
	cfg.LLM.Providers = []ProviderConfig{
		{Name: "groq", Model: "m", Enabled: true, Priority: 1},
		{Name: "openai", Model: "m", Enabled: true, Priority: 1},
	}
	if err := validate(cfg); err == nil {
		t.Error("expected duplicate priority error")
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.NLU.HighThreshold != 0.80 || cfg.Dialogue.LLMFallbackConfidence != 0.85 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.LLM.RetryAttempts != 1 {
		t.Errorf("RetryAttempts = %d, want 1", cfg.LLM.RetryAttempts)
	}
	if cfg.Dialogue.DefaultUsername != "guest" {
		t.Errorf("DefaultUsername = %q", cfg.Dialogue.DefaultUsername)
	}
}
