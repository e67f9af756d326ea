package generativeAI

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/voyageRN-project/voyage/internal/types"
)

const defaultGeminiModel = "gemini-2.0-flash"

var _ Invoker = (*GeminiInvoker)(nil)

type GeminiInvoker struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

func NewGeminiInvoker(ctx context.Context, apiKey, model string, temperature float32, logger *slog.Logger) (*GeminiInvoker, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewGeminiInvoker")
	defer span.End()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}
	span.SetStatus(codes.Ok, "AI client created successfully")
	return &GeminiInvoker{
		client:      client,
		model:       model,
		temperature: temperature,
		logger:      logger,
	}, nil
}

func (g *GeminiInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GeminiInvoker.Invoke", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", g.model),
	))
	defer span.End()

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](g.temperature),
		ResponseMIMEType: "application/json",
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("%w: %w", types.ErrGenerativeService, err)
	}

	text := result.Text()
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return text, nil
}
