package business

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voyageRN-project/voyage/internal/types"
)

var _ BusinessService = (*BusinessServiceImpl)(nil)

type BusinessService interface {
	// MatchRecommendations returns the sponsor businesses a trip may recommend:
	// same country, overlapping interest points, and a client with credit left.
	MatchRecommendations(ctx context.Context, filter types.BusinessFilter) ([]types.RecommendedBusiness, error)
	AddBusiness(ctx context.Context, req types.NewBusinessRequest) (*types.BusinessWithClient, error)
	GetBusiness(ctx context.Context, businessID uuid.UUID) (*types.BusinessWithClient, error)
}

type BusinessServiceImpl struct {
	logger *slog.Logger
	repo   BusinessRepo
}

func NewBusinessService(repo BusinessRepo, logger *slog.Logger) *BusinessServiceImpl {
	return &BusinessServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *BusinessServiceImpl) MatchRecommendations(ctx context.Context, filter types.BusinessFilter) ([]types.RecommendedBusiness, error) {
	ctx, span := otel.Tracer("BusinessService").Start(ctx, "MatchRecommendations", trace.WithAttributes(
		attribute.String("business.country", filter.Country),
		attribute.StringSlice("business.interest_points", filter.InterestPoints),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "MatchRecommendations"), slog.String("country", filter.Country))

	candidates, err := s.repo.FindBusinesses(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to find businesses", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to find businesses")
		return nil, fmt.Errorf("error finding businesses: %w", err)
	}

	// Several businesses can share one client.
	credit := make(map[uuid.UUID]bool)
	matched := make([]types.RecommendedBusiness, 0, len(candidates))
	for _, b := range candidates {
		hasCredit, seen := credit[b.ClientID]
		if !seen {
			client, err := s.repo.FindClient(ctx, b.ClientID)
			if err != nil {
				if !errors.Is(err, types.ErrNotFound) {
					l.ErrorContext(ctx, "Failed to fetch business client", slog.Any("error", err))
					span.RecordError(err)
					span.SetStatus(codes.Error, "Failed to fetch client")
					return nil, fmt.Errorf("error fetching client for business %s: %w", b.ID, err)
				}
				l.WarnContext(ctx, "Business has no client record", slog.String("business_id", b.ID.String()))
			} else {
				hasCredit = client.RemainingCredits() > 0
			}
			credit[b.ClientID] = hasCredit
		}
		if hasCredit {
			matched = append(matched, b)
		}
	}

	l.InfoContext(ctx, "Recommendations matched",
		slog.Int("candidates", len(candidates)),
		slog.Int("matched", len(matched)))
	span.SetAttributes(attribute.Int("business.matched", len(matched)))
	span.SetStatus(codes.Ok, "Recommendations matched")
	return matched, nil
}

func validateNewBusiness(req types.NewBusinessRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"business_name", req.Name},
		{"business_type", req.Type},
		{"business_phone", req.Phone},
		{"business_email", req.Email},
		{"business_country", req.Country},
		{"business_opening_hours", req.OpeningHours},
		{"business_contact_person", req.ContactPerson},
		{"business_contact_person_phone", req.ContactPersonPhone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &types.RequestShapeError{Field: r.field}
		}
	}
	if req.CreditsBought <= 0 {
		return &types.RequestShapeError{Field: "credits_bought"}
	}
	if len(normalizeInterests(req.MatchInterestPoints)) == 0 {
		return &types.RequestShapeError{Field: "business_match_interest_points"}
	}
	return nil
}

func (s *BusinessServiceImpl) AddBusiness(ctx context.Context, req types.NewBusinessRequest) (*types.BusinessWithClient, error) {
	ctx, span := otel.Tracer("BusinessService").Start(ctx, "AddBusiness", trace.WithAttributes(
		attribute.String("business.name", req.Name),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "AddBusiness"))

	if err := validateNewBusiness(req); err != nil {
		l.WarnContext(ctx, "Rejected business onboarding request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	created, err := s.repo.CreateBusiness(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create business", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create business")
		return nil, fmt.Errorf("error creating business: %w", err)
	}

	l.InfoContext(ctx, "Business created",
		slog.String("business_id", created.Business.ID.String()),
		slog.String("client_id", created.Client.ID.String()))
	span.SetStatus(codes.Ok, "Business created")
	return created, nil
}

func (s *BusinessServiceImpl) GetBusiness(ctx context.Context, businessID uuid.UUID) (*types.BusinessWithClient, error) {
	l := s.logger.With(slog.String("method", "GetBusiness"), slog.String("businessID", businessID.String()))
	l.DebugContext(ctx, "Fetching business")

	b, err := s.repo.GetBusiness(ctx, businessID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch business", slog.Any("error", err))
		return nil, fmt.Errorf("error fetching business: %w", err)
	}
	return b, nil
}
