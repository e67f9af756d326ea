package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	database "github.com/voyageRN-project/voyage/app/db"
	appLogger "github.com/voyageRN-project/voyage/app/logger"
	"github.com/voyageRN-project/voyage/app/observability/metrics"
	"github.com/voyageRN-project/voyage/app/tracer"
	"github.com/voyageRN-project/voyage/config"
	_ "github.com/voyageRN-project/voyage/docs"
	"github.com/voyageRN-project/voyage/internal/container"
)

const serviceName = "voyage"

// @title           Voyage API
// @version         1.0
// @description     Generates validated travel itineraries and manages sponsor businesses.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg    config.Config
		logger *slog.Logger
	)

	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Voyage itinerary generation service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Use standard log until slog is configured
			if err := godotenv.Load(); err != nil {
				log.Println("Warning: .env file not found or error loading:", err)
			}
			var err error
			cfg, err = config.InitConfig()
			if err != nil {
				return fmt.Errorf("error initializing config: %w", err)
			}
			logger = appLogger.New(os.Getenv("APP_ENV"), os.Stdout)
			slog.SetDefault(logger)
			return nil
		},
	}

	var skipMigrations bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), &cfg, logger, !skipMigrations)
		},
	}
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply database migrations on start")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
			if err != nil {
				return err
			}
			return database.RunMigrations(dbConfig.ConnectionURL, logger)
		},
	}

	root.AddCommand(serveCmd, migrateCmd, newGenerateCmd(&cfg, &logger))
	return root
}

func serve(parent context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) error {
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Telemetry ---
	telemetry, err := tracer.InitTracingAndMetrics(serviceName)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.Any("error", err))
		}
	}()
	metrics.InitAppMetrics()

	// --- Database ---
	if migrate {
		dbConfig, err := database.NewDatabaseConfig(cfg, logger)
		if err != nil {
			return err
		}
		if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
			return err
		}
	}

	c, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if !c.WaitForDB(ctx) {
		return errors.New("database not ready after waiting")
	}

	// Generation may retry the model several times, so writes get the full request timeout.
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      newHTTPHandler(cfg, logger, c),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", telemetry.MetricsHandler)
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{apiServer, metricsServer} {
		g.Go(func() error {
			logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("Application shut down complete.")
	return nil
}

// newHTTPHandler puts the server-wide middleware in front of the API router.
func newHTTPHandler(cfg *config.Config, logger *slog.Logger, c *container.Container) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", c.Router())

	return otelhttp.NewHandler(router, "voyage-api")
}
