package trip

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

	"github.com/voyageRN-project/voyage/app/observability/metrics"
	"github.com/voyageRN-project/voyage/internal/types"
)

// LedgerStore holds the exposure and credit counters. ChargePublication bumps
// the business's appearance counter and its client's credits spent together.
type LedgerStore interface {
	ChargePublication(ctx context.Context, businessID, clientID uuid.UUID) error
}

// PublishedBusinesses returns, in recommendation order, every recommended
// business whose name appears in any slot of any day. Names match case
// insensitively and each business is returned once.
func PublishedBusinesses(trip *types.GeneratedTrip, recs []types.RecommendedBusiness) []types.RecommendedBusiness {
	var published []types.RecommendedBusiness
	seen := make(map[uuid.UUID]struct{}, len(recs))
	for _, rec := range recs {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
	days:
		for _, day := range trip.TripItinerary {
			for _, place := range day.Places() {
				if strings.EqualFold(strings.TrimSpace(place.Name), name) {
					published = append(published, rec)
					seen[rec.ID] = struct{}{}
					break days
				}
			}
		}
	}
	return published
}

type LedgerReconciler struct {
	store  LedgerStore
	logger *slog.Logger
}

func NewLedgerReconciler(store LedgerStore, logger *slog.Logger) *LedgerReconciler {
	return &LedgerReconciler{
		store:  store,
		logger: logger,
	}
}

// Charge bumps the appearance counter and the client's credits spent once per
// published business. Every business is attempted; failures are joined.
func (l *LedgerReconciler) Charge(ctx context.Context, published []types.RecommendedBusiness) error {
	ctx, span := otel.Tracer("LedgerReconciler").Start(ctx, "Charge", trace.WithAttributes(
		attribute.Int("ledger.published", len(published)),
	))
	defer span.End()

	var errs []error
	for _, b := range published {
		log := l.logger.With(slog.String("business_id", b.ID.String()), slog.String("client_id", b.ClientID.String()))

		if err := l.store.ChargePublication(ctx, b.ID, b.ClientID); err != nil {
			log.ErrorContext(ctx, "Failed to charge published business", slog.Any("error", err))
			errs = append(errs, fmt.Errorf("charge business %s (client %s): %w", b.ID, b.ClientID, err))
			continue
		}
		metrics.Get().PublishedBusinessesTotal.Add(ctx, 1)
		log.InfoContext(ctx, "Business published in trip", slog.String("business_name", b.Name))
	}

	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Ledger update incomplete")
		return err
	}
	span.SetStatus(codes.Ok, "Ledger updated")
	return nil
}
