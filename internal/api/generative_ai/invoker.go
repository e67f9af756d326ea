package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voyageRN-project/voyage/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Invoker sends one prompt to a generative text service and returns the raw text.
// A returned error always wraps types.ErrGenerativeService.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// NewInvoker builds the invoker for the configured provider.
func NewInvoker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Invoker, error) {
	ai := cfg.GenerativeAI
	if ai.APIKey == "" {
		return nil, fmt.Errorf("generativeAI.apiKey is not set")
	}

	switch strings.ToLower(ai.Provider) {
	case ProviderGemini, "":
		return NewGeminiInvoker(ctx, ai.APIKey, ai.Model, ai.Temperature, logger)
	case ProviderOpenAI:
		var opts []OpenAIOption
		if ai.BaseURL != "" {
			opts = append(opts, WithOpenAIBaseURL(ai.BaseURL))
		}
		return NewOpenAIInvoker(ai.APIKey, ai.Model, ai.Temperature, logger, opts...), nil
	default:
		return nil, fmt.Errorf("unknown generative provider %q", ai.Provider)
	}
}
