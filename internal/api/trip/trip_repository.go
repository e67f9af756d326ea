package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/voyageRN-project/voyage/app/db"
	"github.com/voyageRN-project/voyage/internal/types"
)

var _ TripRepo = (*PostgresTripRepo)(nil)

type TripRepo interface {
	InsertGeneratedTrip(ctx context.Context, rec types.GeneratedTripRecord) (uuid.UUID, error)
	// GetGeneratedTrip returns types.ErrNotFound for unknown IDs.
	GetGeneratedTrip(ctx context.Context, tripID uuid.UUID) (*types.GeneratedTripRecord, error)
}

type PostgresTripRepo struct {
	logger *slog.Logger
	pgpool database.Pool
}

func NewPostgresTripRepo(pgpool database.Pool, logger *slog.Logger) *PostgresTripRepo {
	return &PostgresTripRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresTripRepo) InsertGeneratedTrip(ctx context.Context, rec types.GeneratedTripRecord) (uuid.UUID, error) {
	ctx, span := otel.Tracer("TripRepo").Start(ctx, "InsertGeneratedTrip", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "generated_trips"),
		attribute.String("trip.destination", rec.Destination),
	))
	defer span.End()

	published := rec.PublishedBusinesses
	if published == nil {
		published = []uuid.UUID{}
	}

	var id uuid.UUID
	err := r.pgpool.QueryRow(ctx, `
		INSERT INTO generated_trips (destination, duration, body, business_ids)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		rec.Destination, rec.Duration, rec.Body, published,
	).Scan(&id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert generated trip", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return uuid.Nil, fmt.Errorf("failed to insert generated trip: %w", err)
	}

	span.SetAttributes(attribute.String("trip.id", id.String()))
	span.SetStatus(codes.Ok, "Trip stored")
	return id, nil
}

func (r *PostgresTripRepo) GetGeneratedTrip(ctx context.Context, tripID uuid.UUID) (*types.GeneratedTripRecord, error) {
	ctx, span := otel.Tracer("TripRepo").Start(ctx, "GetGeneratedTrip", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "generated_trips"),
		attribute.String("trip.id", tripID.String()),
	))
	defer span.End()

	var rec types.GeneratedTripRecord
	err := r.pgpool.QueryRow(ctx, `
		SELECT id, destination, duration, body, business_ids, created_at
		FROM generated_trips WHERE id = $1`,
		tripID,
	).Scan(&rec.ID, &rec.Destination, &rec.Duration, &rec.Body, &rec.PublishedBusinesses, &rec.CreatedAt)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Trip not found")
			return nil, fmt.Errorf("trip %s: %w", tripID, types.ErrNotFound)
		}
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to fetch generated trip: %w", err)
	}

	span.SetStatus(codes.Ok, "Trip fetched")
	return &rec, nil
}
