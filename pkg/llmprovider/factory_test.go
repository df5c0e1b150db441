package llmprovider

import (
	"errors"
	"testing"

	"bankbot/config"
)

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "g-key", Model: "gemini-2.5-flash"},
			{Name: "groq", Enabled: true, Priority: 1, APIKey: "gsk-key", Model: "llama-3.1-8b-instant", Timeout: "10s"},
			{Name: "openai", Enabled: false, Priority: 3, APIKey: "sk", Model: "gpt-4o-mini"},
			{Name: "deepseek", Enabled: true, Priority: 4, Model: "deepseek-chat"},
			{Name: "mystery", Enabled: true, Priority: 5, APIKey: "x", Model: "y"},
		},
	}

	providers, warnings, err := InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("providers = %d, want 2", len(providers))
	}
	if providers[0].Name() != ProviderGroq || providers[1].Name() != ProviderGemini {
		t.Errorf("order = %s, %s", providers[0].Name(), providers[1].Name())
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want 2 (missing key, unknown provider)", warnings)
	}
}

func TestInitializeProviders_NoneUsable(t *testing.T) {
	if _, _, err := InitializeProviders(&config.LLMConfig{}); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("err = %v, want ErrNoProvidersConfigured", err)
	}

	_, warnings, err := InitializeProviders(&config.LLMConfig{Providers: []config.ProviderConfig{
		{Name: "groq", Enabled: true, Priority: 1, Model: "m", Timeout: "soon", APIKey: "k"},
	}})
	if err == nil || len(warnings) != 1 {
		t.Errorf("err = %v warnings = %v", err, warnings)
	}
}
