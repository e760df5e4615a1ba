package providers

import (
	"context"
)

// Completer generates a completion for a prompt against a named model.
type Completer interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}

type ProviderParams struct {
	BaseURL string
	APIKey  string
}

type ProviderOption func(*ProviderParams)

func WithBaseURL(baseURL string) ProviderOption {
	return func(p *ProviderParams) {
		p.BaseURL = baseURL
	}
}

func WithAPIKey(apiKey string) ProviderOption {
	return func(p *ProviderParams) {
		p.APIKey = apiKey
	}
}
