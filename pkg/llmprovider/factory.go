package llmprovider

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"bankbot/config"
	"bankbot/pkg/gemini"
)

// Provider names
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderGroq     = "groq"
	ProviderDeepSeek = "deepseek"
	ProviderQwen     = "qwen"
)

// Base URLs of the OpenAI-compatible endpoints.
var openAICompatibleURLs = map[string]string{
	ProviderGroq:     "https://api.groq.com/openai/v1",
	ProviderDeepSeek: "https://api.deepseek.com/v1",
	ProviderQwen:     "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
}

const defaultProviderTimeout = 30 * time.Second

// InitializeProviders creates Provider instances from config.LLMConfig.
// Returns providers sorted by priority (ascending) with disabled providers
// filtered out. Providers that fail to initialize are skipped and reported
// in the returned warnings.
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, []string, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("LLM config is nil")
	}

	var enabled []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	var warnings []string
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to initialize provider %s (priority %d): %v", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, warnings, fmt.Errorf("no providers successfully initialized: %s", strings.Join(warnings, "; "))
	}
	return providers, warnings, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", cfg.Name)
	}

	timeout := defaultProviderTimeout
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("provider %s: invalid timeout %q: %w", cfg.Name, cfg.Timeout, err)
		}
		timeout = d
	}
	httpClient := &http.Client{Timeout: timeout}

	switch cfg.Name {
	case ProviderGemini:
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	case ProviderOpenAI, ProviderGroq, ProviderDeepSeek, ProviderQwen, "alibaba":
		name := cfg.Name
		if name == "alibaba" {
			name = ProviderQwen
		}
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if base, ok := openAICompatibleURLs[name]; ok {
			clientCfg.BaseURL = base
		}
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		clientCfg.HTTPClient = httpClient
		return NewOpenAIAdapter(name, cfg.Model, openai.NewClientWithConfig(clientCfg)), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}
