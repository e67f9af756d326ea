package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/voyageRN-project/voyage/app/observability/metrics"
	"github.com/voyageRN-project/voyage/internal/api/geo"
	"github.com/voyageRN-project/voyage/internal/types"
)

var _ TripService = (*TripServiceImpl)(nil)

// TripService is the entry point of the itinerary pipeline.
type TripService interface {
	GenerateTrip(ctx context.Context, req types.TripRequest) (*types.GeneratedTrip, error)
	GetTrip(ctx context.Context, tripID uuid.UUID) (*types.GeneratedTripRecord, error)
}

// Matcher selects the sponsor businesses offered to the generative service.
type Matcher interface {
	MatchRecommendations(ctx context.Context, filter types.BusinessFilter) ([]types.RecommendedBusiness, error)
}

type TripServiceImpl struct {
	logger       *slog.Logger
	matcher      Matcher
	orchestrator *Orchestrator
	ledger       *LedgerReconciler
	repo         TripRepo
}

func NewTripService(matcher Matcher, orchestrator *Orchestrator, ledger *LedgerReconciler, repo TripRepo, logger *slog.Logger) *TripServiceImpl {
	return &TripServiceImpl{
		logger:       logger,
		matcher:      matcher,
		orchestrator: orchestrator,
		ledger:       ledger,
		repo:         repo,
	}
}

var dayCountPattern = regexp.MustCompile(`\d+`)

// ParseDays returns the first integer token of a free text duration such as "3 days".
func ParseDays(duration string) (int, bool) {
	tok := dayCountPattern.FindString(duration)
	if tok == "" {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ValidateRequest checks the required fields in their documented order and
// returns the day count.
func ValidateRequest(req types.TripRequest) (int, error) {
	required := []struct {
		field string
		value string
	}{
		{"budget", req.Budget},
		{"season", req.Season},
		{"participants", req.Participants},
		{"duration", req.Duration},
		{"country-code", req.CountryCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return 0, &types.RequestShapeError{Field: r.field}
		}
	}
	if len(types.SplitCommaList(strings.Join(req.InterestPoints, ","))) == 0 {
		return 0, &types.RequestShapeError{Field: "interest-points"}
	}

	days, ok := ParseDays(req.Duration)
	if !ok {
		return 0, &types.RequestShapeError{Field: "duration", Reason: "must contain a positive number of days"}
	}
	return days, nil
}

// GenerateTrip validates the request, gathers recommendations, runs the
// attempt loop, stores the accepted trip and charges the published businesses.
func (s *TripServiceImpl) GenerateTrip(ctx context.Context, req types.TripRequest) (trip *types.GeneratedTrip, err error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "GenerateTrip", trace.WithAttributes(
		attribute.String("trip.country_code", req.CountryCode),
		attribute.String("trip.duration", req.Duration),
		attribute.StringSlice("trip.interest_points", req.InterestPoints),
	))
	defer span.End()
	defer func() {
		metrics.Get().TripRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome(err))))
	}()

	l := s.logger.With(slog.String("method", "GenerateTrip"), slog.String("country_code", req.CountryCode))

	days, err := ValidateRequest(req)
	if err != nil {
		l.WarnContext(ctx, "Rejected trip request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}
	req.InterestPoints = types.SplitCommaList(strings.Join(req.InterestPoints, ","))

	countryName, err := geo.CountryName(req.CountryCode)
	if err != nil {
		l.WarnContext(ctx, "Unknown country code", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Country resolution failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("trip.country", countryName))

	recs, err := s.matcher.MatchRecommendations(ctx, types.BusinessFilter{
		Country:           countryName,
		InterestPoints:    req.InterestPoints,
		City:              req.City,
		Area:              req.Area,
		AccommodationType: req.AccommodationType,
	})
	if err != nil {
		// Recommendations are optional context for the prompt.
		l.WarnContext(ctx, "Continuing without recommendations", slog.Any("error", err))
		recs = nil
	}

	result, err := s.orchestrator.Run(ctx, Plan{
		Request:         req,
		CountryName:     countryName,
		Days:            days,
		Recommendations: recs,
	})
	if err != nil {
		l.ErrorContext(ctx, "Trip generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return nil, err
	}
	trip = result.Trip

	published := PublishedBusinesses(trip, recs)
	publishedIDs := make([]uuid.UUID, 0, len(published))
	for _, b := range published {
		publishedIDs = append(publishedIDs, b.ID)
	}

	body, err := result.Document.Raw()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode trip")
		return nil, fmt.Errorf("failed to encode generated trip: %w", err)
	}
	tripID, err := s.repo.InsertGeneratedTrip(ctx, types.GeneratedTripRecord{
		Destination:         Destination(countryName, req.Area, req.City),
		Duration:            req.Duration,
		Body:                body,
		PublishedBusinesses: publishedIDs,
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to store generated trip", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store trip")
		return nil, fmt.Errorf("error storing generated trip: %w", err)
	}
	trip.ID = tripID

	// The traveller already has a valid trip; a ledger failure is logged, not returned.
	if chargeErr := s.ledger.Charge(ctx, published); chargeErr != nil {
		l.ErrorContext(ctx, "Ledger update incomplete", slog.String("trip_id", tripID.String()), slog.Any("error", chargeErr))
		span.AddEvent("ledger_update_incomplete")
	}

	l.InfoContext(ctx, "Trip generated",
		slog.String("trip_id", tripID.String()),
		slog.Int("days", len(trip.TripItinerary)),
		slog.Int("attempts", result.Attempts),
		slog.Int("published_businesses", len(published)))
	span.SetAttributes(attribute.String("trip.id", tripID.String()), attribute.Int("trip.attempts", result.Attempts))
	span.SetStatus(codes.Ok, "Trip generated")
	return trip, nil
}

func (s *TripServiceImpl) GetTrip(ctx context.Context, tripID uuid.UUID) (*types.GeneratedTripRecord, error) {
	l := s.logger.With(slog.String("method", "GetTrip"), slog.String("tripID", tripID.String()))
	l.DebugContext(ctx, "Fetching generated trip")

	rec, err := s.repo.GetGeneratedTrip(ctx, tripID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch generated trip", slog.Any("error", err))
		return nil, fmt.Errorf("error fetching generated trip: %w", err)
	}
	return rec, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, types.ErrRequestShape), errors.Is(err, types.ErrCountryResolution):
		return "bad_request"
	case errors.Is(err, types.ErrExhaustedRetries):
		return "exhausted"
	case errors.Is(err, types.ErrThirdPartyLookup), errors.Is(err, types.ErrGenerativeService):
		return "upstream_error"
	default:
		return "error"
	}
}
