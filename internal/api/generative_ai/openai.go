package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voyageRN-project/voyage/internal/types"
)

const defaultOpenAIModel = openai.GPT4oMini

var _ Invoker = (*OpenAIInvoker)(nil)

type OpenAIInvoker struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

// OpenAIOption customises the underlying client config.
type OpenAIOption func(*openai.ClientConfig)

// WithOpenAIBaseURL points the client at another OpenAI compatible endpoint.
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(c *openai.ClientConfig) { c.BaseURL = baseURL }
}

func NewOpenAIInvoker(apiKey, model string, temperature float32, logger *slog.Logger, opts ...OpenAIOption) *OpenAIInvoker {
	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIInvoker{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

func (o *OpenAIInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "OpenAIInvoker.Invoke", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", o.model),
	))
	defer span.End()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: o.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "OpenAI request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create chat completion")
		return "", fmt.Errorf("%w: %w", types.ErrGenerativeService, err)
	}
	if len(resp.Choices) == 0 {
		err = errors.New("chat completion returned no choices")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty completion")
		return "", fmt.Errorf("%w: %w", types.ErrGenerativeService, err)
	}

	text := resp.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return text, nil
}
