package llm

import (
	"context"
	"errors"
	"fmt"
)

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderVertex:
		return NewVertexClient(ctx, cfg, observer)
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrUnavailable, cfg.Provider)
	}
}

// unavailableClient stands in when initialisation failed, so the rest of
// the tool keeps running and each model action reports the cause.
type unavailableClient struct {
	cause error
}

// NewUnavailableClient returns a client whose every call fails with cause.
func NewUnavailableClient(cause error) LLMClient {
	return unavailableClient{cause: cause}
}

func (c unavailableClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	if errors.Is(c.cause, ErrUnavailable) {
		return nil, c.cause
	}
	return nil, fmt.Errorf("%w: %w", ErrUnavailable, c.cause)
}
