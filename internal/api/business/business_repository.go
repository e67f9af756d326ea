package business

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/voyageRN-project/voyage/app/db"
	"github.com/voyageRN-project/voyage/app/observability/metrics"
	"github.com/voyageRN-project/voyage/internal/types"
)

var _ BusinessRepo = (*PostgresBusinessRepo)(nil)

// BusinessRepo is the store contract for sponsor businesses and their clients' credit ledger.
type BusinessRepo interface {
	// FindBusinesses returns businesses in the filter's country whose interest points
	// overlap the requested ones. City and area only exclude businesses that set them.
	FindBusinesses(ctx context.Context, filter types.BusinessFilter) ([]types.RecommendedBusiness, error)
	// FindClient returns types.ErrNotFound when the client does not exist.
	FindClient(ctx context.Context, clientID uuid.UUID) (*types.BusinessClient, error)
	IncrementAppearance(ctx context.Context, businessID uuid.UUID) error
	IncrementCreditsSpent(ctx context.Context, clientID uuid.UUID) error
	// ChargePublication runs both increments in one transaction.
	ChargePublication(ctx context.Context, businessID, clientID uuid.UUID) error

	// CreateBusiness stores the client and its business in one transaction.
	CreateBusiness(ctx context.Context, req types.NewBusinessRequest) (*types.BusinessWithClient, error)
	GetBusiness(ctx context.Context, businessID uuid.UUID) (*types.BusinessWithClient, error)
}

type PostgresBusinessRepo struct {
	logger *slog.Logger
	pgpool database.Pool
}

func NewPostgresBusinessRepo(pgpool database.Pool, logger *slog.Logger) *PostgresBusinessRepo {
	return &PostgresBusinessRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func observeQuery(ctx context.Context, op string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("db.operation", op))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func normalizeInterests(points []string) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *PostgresBusinessRepo) FindBusinesses(ctx context.Context, filter types.BusinessFilter) (businesses []types.RecommendedBusiness, err error) {
	ctx, span := otel.Tracer("BusinessRepo").Start(ctx, "FindBusinesses", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "businesses"),
		attribute.String("business.country", filter.Country),
	))
	defer span.End()
	defer func(start time.Time) { observeQuery(ctx, "find_businesses", start, err) }(time.Now())

	query := `
		SELECT id, client_id, business_name, business_type, business_country,
		       business_match_interest_points, business_description
		FROM businesses
		WHERE lower(business_country) = lower($1)
		  AND business_match_interest_points && $2::text[]
		  AND ($3::text = '' OR business_city IS NULL OR lower(business_city) = lower($3))
		  AND ($4::text = '' OR business_area IS NULL OR lower(business_area) = lower($4))
		ORDER BY appearance_counter ASC, created_at ASC`

	rows, err := r.pgpool.Query(ctx, query,
		filter.Country, normalizeInterests(filter.InterestPoints), filter.City, filter.Area)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query businesses", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b types.RecommendedBusiness
		if err = rows.Scan(&b.ID, &b.ClientID, &b.Name, &b.Type, &b.Country,
			&b.MatchInterestPoints, &b.Description); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Row scan failed")
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err = rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rows iteration failed")
		return nil, fmt.Errorf("error iterating business rows: %w", err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(businesses)))
	span.SetStatus(codes.Ok, "Businesses fetched")
	return businesses, nil
}

func (r *PostgresBusinessRepo) FindClient(ctx context.Context, clientID uuid.UUID) (*types.BusinessClient, error) {
	ctx, span := otel.Tracer("BusinessRepo").Start(ctx, "FindClient", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "business_clients"),
		attribute.String("client.id", clientID.String()),
	))
	defer span.End()

	query := `
		SELECT id, business_contact_person, business_contact_person_phone,
		       credits_bought, credits_spent, created_at
		FROM business_clients WHERE id = $1`

	var c types.BusinessClient
	err := r.pgpool.QueryRow(ctx, query, clientID).Scan(
		&c.ID, &c.ContactPerson, &c.ContactPersonPhone, &c.CreditsBought, &c.CreditsSpent, &c.CreatedAt)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Client not found")
			return nil, fmt.Errorf("client %s: %w", clientID, types.ErrNotFound)
		}
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}

	span.SetStatus(codes.Ok, "Client fetched")
	return &c, nil
}

const (
	incrementAppearanceSQL   = "UPDATE businesses SET appearance_counter = appearance_counter + 1 WHERE id = $1"
	incrementCreditsSpentSQL = "UPDATE business_clients SET credits_spent = credits_spent + 1 WHERE id = $1"
)

// execer is satisfied by both the pool and a pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// IncrementAppearance bumps the counter in place so concurrent trips never lose an update.
func (r *PostgresBusinessRepo) IncrementAppearance(ctx context.Context, businessID uuid.UUID) error {
	return r.increment(ctx, r.pgpool, "IncrementAppearance", "businesses", incrementAppearanceSQL, businessID)
}

func (r *PostgresBusinessRepo) IncrementCreditsSpent(ctx context.Context, clientID uuid.UUID) error {
	return r.increment(ctx, r.pgpool, "IncrementCreditsSpent", "business_clients", incrementCreditsSpentSQL, clientID)
}

// ChargePublication records one appearance of the business and charges its
// client one credit. Either both counters move or neither does.
func (r *PostgresBusinessRepo) ChargePublication(ctx context.Context, businessID, clientID uuid.UUID) error {
	ctx, span := otel.Tracer("BusinessRepo").Start(ctx, "ChargePublication", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("business.id", businessID.String()),
		attribute.String("business.client_id", clientID.String()),
	))
	defer span.End()

	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to begin transaction")
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	if err = r.increment(ctx, tx, "IncrementAppearance", "businesses", incrementAppearanceSQL, businessID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Appearance update failed")
		return err
	}
	if err = r.increment(ctx, tx, "IncrementCreditsSpent", "business_clients", incrementCreditsSpentSQL, clientID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Credit update failed")
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	span.SetStatus(codes.Ok, "Publication charged")
	return nil
}

func (r *PostgresBusinessRepo) increment(ctx context.Context, q execer, op, table, query string, id uuid.UUID) (err error) {
	ctx, span := otel.Tracer("BusinessRepo").Start(ctx, op, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", table),
		attribute.String("db.record.id", id.String()),
	))
	defer span.End()
	defer func(start time.Time) { observeQuery(ctx, op, start, err) }(time.Now())

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to increment counter",
			slog.String("table", table), slog.String("id", id.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("%s %s: %w", table, id, types.ErrNotFound)
		span.RecordError(err)
		span.SetStatus(codes.Error, "No row updated")
		return err
	}

	span.SetStatus(codes.Ok, "Counter incremented")
	return nil
}

func (r *PostgresBusinessRepo) CreateBusiness(ctx context.Context, req types.NewBusinessRequest) (*types.BusinessWithClient, error) {
	ctx, span := otel.Tracer("BusinessRepo").Start(ctx, "CreateBusiness", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("business.name", req.Name),
	))
	defer span.End()

	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to begin transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	out := &types.BusinessWithClient{
		Client: types.BusinessClient{
			ContactPerson:      req.ContactPerson,
			ContactPersonPhone: req.ContactPersonPhone,
			CreditsBought:      req.CreditsBought,
		},
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO business_clients (business_contact_person, business_contact_person_phone, credits_bought, credits_spent)
		VALUES ($1, $2, $3, 0)
		RETURNING id, created_at`,
		req.ContactPerson, req.ContactPersonPhone, req.CreditsBought,
	).Scan(&out.Client.ID, &out.Client.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert business client", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT client failed")
		return nil, fmt.Errorf("failed to insert business client: %w", err)
	}

	b := &out.Business
	b.ClientID = out.Client.ID
	b.Name = req.Name
	b.Type = req.Type
	b.Country = req.Country
	b.MatchInterestPoints = normalizeInterests(req.MatchInterestPoints)
	b.Description = req.Description
	b.Phone = req.Phone
	b.Email = req.Email
	b.OpeningHours = req.OpeningHours
	b.City = req.City
	b.Area = req.Area

	err = tx.QueryRow(ctx, `
		INSERT INTO businesses (
			client_id, business_name, business_type, business_phone, business_email,
			business_country, business_city, business_area, business_opening_hours,
			business_description, business_match_interest_points, appearance_counter
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0)
		RETURNING id, created_at`,
		b.ClientID, b.Name, b.Type, b.Phone, b.Email,
		b.Country, b.City, b.Area, b.OpeningHours,
		b.Description, b.MatchInterestPoints,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert business", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT business failed")
		return nil, fmt.Errorf("failed to insert business: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to commit transaction")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	span.SetAttributes(attribute.String("business.id", b.ID.String()))
	span.SetStatus(codes.Ok, "Business created")
	return out, nil
}

func (r *PostgresBusinessRepo) GetBusiness(ctx context.Context, businessID uuid.UUID) (*types.BusinessWithClient, error) {
	ctx, span := otel.Tracer("BusinessRepo").Start(ctx, "GetBusiness", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "businesses"),
		attribute.String("business.id", businessID.String()),
	))
	defer span.End()

	query := `
		SELECT b.id, b.client_id, b.business_name, b.business_type, b.business_country,
		       b.business_match_interest_points, b.business_description,
		       b.business_phone, b.business_email, b.business_opening_hours,
		       b.business_city, b.business_area, b.appearance_counter, b.created_at,
		       c.id, c.business_contact_person, c.business_contact_person_phone,
		       c.credits_bought, c.credits_spent, c.created_at
		FROM businesses b
		JOIN business_clients c ON c.id = b.client_id
		WHERE b.id = $1`

	var out types.BusinessWithClient
	b, c := &out.Business, &out.Client
	err := r.pgpool.QueryRow(ctx, query, businessID).Scan(
		&b.ID, &b.ClientID, &b.Name, &b.Type, &b.Country,
		&b.MatchInterestPoints, &b.Description,
		&b.Phone, &b.Email, &b.OpeningHours,
		&b.City, &b.Area, &b.AppearanceCounter, &b.CreatedAt,
		&c.ID, &c.ContactPerson, &c.ContactPersonPhone,
		&c.CreditsBought, &c.CreditsSpent, &c.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Business not found")
			return nil, fmt.Errorf("business %s: %w", businessID, types.ErrNotFound)
		}
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to fetch business: %w", err)
	}

	span.SetStatus(codes.Ok, "Business fetched")
	return &out, nil
}
