package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/voyageRN-project/voyage/app/observability/metrics"
	generativeAI "github.com/voyageRN-project/voyage/internal/api/generative_ai"
	"github.com/voyageRN-project/voyage/internal/types"
)

const (
	DefaultMaxAttempts = 7

	// InvalidJSONFeedback replaces the feedback after a response that could not be decoded.
	InvalidJSONFeedback = "The previous response was not valid structured output (JSON)."
)

// AttemptState is the orchestrator's position inside one attempt.
type AttemptState string

const (
	StateComposing   AttemptState = "composing"
	StateInvoking    AttemptState = "invoking"
	StateDecoding    AttemptState = "decoding"
	StateValidating  AttemptState = "validating"
	StateSuccess     AttemptState = "success"
	StateRetrying    AttemptState = "retrying"
	StateHardFailure AttemptState = "hard_failure"
)

// Plan is the per-request input of the orchestrator.
type Plan struct {
	Request         types.TripRequest
	CountryName     string
	Days            int
	Recommendations []types.RecommendedBusiness
}

func (p Plan) target() Target {
	return Target{
		Days:        p.Days,
		CountryCode: p.Request.CountryCode,
		CountryName: p.CountryName,
		City:        p.Request.City,
	}
}

// Result is a validated trip with the document it was built from.
type Result struct {
	Trip     *types.GeneratedTrip
	Document Document
	Attempts int
}

// Orchestrator runs the bounded compose, invoke, decode, validate loop.
type Orchestrator struct {
	invoker     generativeAI.Invoker
	validator   Validator
	maxAttempts int
	logger      *slog.Logger
}

func NewOrchestrator(invoker generativeAI.Invoker, validator Validator, maxAttempts int, logger *slog.Logger) *Orchestrator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Orchestrator{
		invoker:     invoker,
		validator:   validator,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Run returns the first attempt that passes validation. Decode and validation
// failures are fed back into the next prompt; anything else ends the run.
// After maxAttempts failures the error wraps types.ErrExhaustedRetries and the
// last attempt's failure.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) (*Result, error) {
	ctx, span := otel.Tracer("TripOrchestrator").Start(ctx, "Run", trace.WithAttributes(
		attribute.Int("trip.days", plan.Days),
		attribute.Int("trip.recommendations", len(plan.Recommendations)),
		attribute.Int("trip.max_attempts", o.maxAttempts),
	))
	defer span.End()

	m := metrics.Get()
	target := plan.target()
	var feedback []string
	var lastFailure error

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Context done")
			return nil, err
		}
		l := o.logger.With(slog.Int("attempt", attempt), slog.Int("max_attempts", o.maxAttempts))

		o.transition(ctx, span, l, attempt, StateComposing)
		prompt := ComposePrompt(PromptInput{
			Request:         plan.Request,
			CountryName:     plan.CountryName,
			Days:            plan.Days,
			Recommendations: plan.Recommendations,
			Feedback:        feedback,
		})

		o.transition(ctx, span, l, attempt, StateInvoking)
		raw, err := o.invoker.Invoke(ctx, prompt)
		if err != nil {
			l.ErrorContext(ctx, "Generative service failed", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Generative service failed")
			if !errors.Is(err, types.ErrGenerativeService) {
				err = fmt.Errorf("%w: %w", types.ErrGenerativeService, err)
			}
			return nil, err
		}

		o.transition(ctx, span, l, attempt, StateDecoding)
		doc, err := DecodeResponse(raw)
		if err != nil {
			l.WarnContext(ctx, "Response is not valid JSON", slog.Any("error", err), slog.Int("response_length", len(raw)))
			feedback = []string{InvalidJSONFeedback}
			lastFailure = err
			o.transition(ctx, span, l, attempt, StateRetrying)
			continue
		}

		o.transition(ctx, span, l, attempt, StateValidating)
		trip, verrs, err := o.validator.Validate(ctx, doc, target)
		if err != nil {
			l.ErrorContext(ctx, "Validation could not complete", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Validation collaborator failed")
			return nil, err
		}
		if len(verrs) > 0 {
			feedback = make([]string, 0, len(verrs))
			for _, ve := range verrs {
				feedback = append(feedback, ve.Message)
				m.ValidationErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("category", string(ve.Category))))
			}
			l.WarnContext(ctx, "Itinerary failed validation", slog.Int("errors", len(verrs)), slog.Any("validation_errors", verrs))
			lastFailure = &types.ValidationFailure{Errors: verrs}
			o.transition(ctx, span, l, attempt, StateRetrying)
			continue
		}

		o.transition(ctx, span, l, attempt, StateSuccess)
		m.GenerationAttempts.Record(ctx, int64(attempt), metric.WithAttributes(attribute.Bool("success", true)))
		span.SetAttributes(attribute.Int("trip.attempts", attempt))
		span.SetStatus(codes.Ok, "Itinerary generated")
		return &Result{Trip: trip, Document: doc, Attempts: attempt}, nil
	}

	o.transition(ctx, span, o.logger, o.maxAttempts, StateHardFailure)
	m.GenerationAttempts.Record(ctx, int64(o.maxAttempts), metric.WithAttributes(attribute.Bool("success", false)))
	err := fmt.Errorf("%w after %d attempts: %w", types.ErrExhaustedRetries, o.maxAttempts, lastFailure)
	span.RecordError(err)
	span.SetStatus(codes.Error, "Attempts exhausted")
	return nil, err
}

func (o *Orchestrator) transition(ctx context.Context, span trace.Span, l *slog.Logger, attempt int, state AttemptState) {
	span.AddEvent(string(state), trace.WithAttributes(attribute.Int("attempt", attempt)))
	l.DebugContext(ctx, "Trip generation state", slog.String("state", string(state)))
}
