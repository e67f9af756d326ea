package container

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/voyageRN-project/voyage/app/db"
	"github.com/voyageRN-project/voyage/config"
	"github.com/voyageRN-project/voyage/internal/api/business"
	generativeAI "github.com/voyageRN-project/voyage/internal/api/generative_ai"
	"github.com/voyageRN-project/voyage/internal/api/geo"
	"github.com/voyageRN-project/voyage/internal/api/health"
	"github.com/voyageRN-project/voyage/internal/api/trip"
	"github.com/voyageRN-project/voyage/internal/router"
)

// Dependencies are the external collaborators everything else is built on.
type Dependencies struct {
	Pool    database.Pool
	Invoker generativeAI.Invoker
	Locator geo.Locator
}

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	Pool            database.Pool
	TripService     trip.TripService
	TripHandler     *trip.Handler
	BusinessHandler *business.Handler
	HealthHandler   *health.Handler

	pgxPool *pgxpool.Pool
}

// NewContainer connects to Postgres and the configured generative provider
// and wires every repository, service and handler on top of them.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	invoker, err := generativeAI.NewInvoker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize generative service", slog.Any("error", err))
		pool.Close()
		return nil, err
	}

	c := Build(cfg, logger, Dependencies{
		Pool:    pool,
		Invoker: invoker,
		Locator: NewLocator(cfg, logger),
	})
	c.pgxPool = pool
	return c, nil
}

// NewLocator builds the cached geo client described by cfg.Geo.
func NewLocator(cfg *config.Config, logger *slog.Logger) geo.Locator {
	geoClient := geo.NewClient(logger,
		geo.WithAutocompleteURL(cfg.Geo.AutocompleteURL),
		geo.WithReverseGeocodeURL(cfg.Geo.ReverseGeocodeURL),
		geo.WithUserAgent(cfg.Geo.UserAgent),
		geo.WithTimeout(cfg.Geo.Timeout),
	)
	return geo.NewCachedLocator(geoClient, cfg.Geo.CacheTTL, logger)
}

// NewOrchestrator builds the validate-and-retry loop over invoker and locator.
func NewOrchestrator(cfg *config.Config, logger *slog.Logger, invoker generativeAI.Invoker, locator geo.Locator) *trip.Orchestrator {
	validator := trip.NewItineraryValidator(locator, logger)
	return trip.NewOrchestrator(invoker, validator, cfg.Generation.MaxAttempts, logger)
}

// Build wires repositories, services and handlers from already constructed collaborators.
func Build(cfg *config.Config, logger *slog.Logger, deps Dependencies) *Container {
	// repositories
	businessRepo := business.NewPostgresBusinessRepo(deps.Pool, logger)
	tripRepo := trip.NewPostgresTripRepo(deps.Pool, logger)

	// services
	businessService := business.NewBusinessService(businessRepo, logger)
	orchestrator := NewOrchestrator(cfg, logger, deps.Invoker, deps.Locator)
	ledger := trip.NewLedgerReconciler(businessRepo, logger)
	tripService := trip.NewTripService(businessService, orchestrator, ledger, tripRepo, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Pool:            deps.Pool,
		TripService:     tripService,
		TripHandler:     trip.NewTripHandler(tripService, logger),
		BusinessHandler: business.NewBusinessHandler(businessService, logger),
		HealthHandler:   health.NewHealthHandler(deps.Pool, logger),
	}
}

// Router builds the API router from the container's handlers.
func (c *Container) Router() http.Handler {
	if c.Config.Auth.JWTSecret == "" {
		c.Logger.Warn("auth.jwtSecret is empty, business_app routes will reject every request")
	}
	return router.SetupRouter(&router.Config{
		TripHandler:     c.TripHandler,
		BusinessHandler: c.BusinessHandler,
		HealthHandler:   c.HealthHandler,
		JWTSecret:       []byte(c.Config.Auth.JWTSecret),
		AllowedOrigins:  c.Config.Server.AllowedOrigins,
	})
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.pgxPool != nil {
		c.pgxPool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
