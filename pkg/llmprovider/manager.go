package llmprovider

import (
	"context"
	"fmt"
	"time"

	"bankbot/internal/metrics"
	"bankbot/pkg/log"
)

// Log prefixes
const (
	LogPrefixGenerate = "pkg.llmprovider.GenerateContent"
	LogPrefixInvoke   = "pkg.llmprovider.Invoke"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // Global timeout for the entire fallback chain
	Temperature     float64       // Used by Invoke
	MaxTokens       int           // Used by Invoke
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{}
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 1
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// Invoke sends a single system + user exchange and returns the reply text.
func (m *Manager) Invoke(ctx context.Context, system, user string) (string, error) {
	req := &Request{
		Messages:    []Message{{Role: RoleUser, Parts: []Part{{Text: user}}}},
		Temperature: m.config.Temperature,
		MaxTokens:   m.config.MaxTokens,
	}
	if system != "" {
		req.SystemInstruction = &Message{Role: RoleSystem, Parts: []Part{{Text: system}}}
	}

	resp, err := m.GenerateContent(ctx, req)
	if err != nil {
		metrics.LLMFallbackTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return "", err
	}
	text := resp.Text()
	if text == "" {
		metrics.LLMFallbackTotal.WithLabelValues(metrics.ResultFailure).Inc()
		m.logger.Warnf(ctx, "%s: %s returned no text", LogPrefixInvoke, resp.ProviderName)
		return "", fmt.Errorf("%s: %w", resp.ProviderName, ErrEmptyResponse)
	}
	metrics.LLMFallbackTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return text, nil
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), ctx.Err())
		default:
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = &ProviderError{Provider: provider.Name(), Err: err}

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry implements retry mechanism with linear backoff
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// logSuccess logs successful LLM generation with token usage
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Infof(ctx, "%s: provider=%s model=%s input_tokens=%d output_tokens=%d",
		LogPrefixGenerate, provider.Name(), provider.Model(), in, out)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "%s: provider=%s model=%s failed: %v",
		LogPrefixGenerate, provider.Name(), provider.Model(), err)
}
