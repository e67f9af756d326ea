package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/voyageRN-project/voyage/app/middleware"
	"github.com/voyageRN-project/voyage/internal/api/business"
	"github.com/voyageRN-project/voyage/internal/api/health"
	"github.com/voyageRN-project/voyage/internal/api/trip"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TripHandler     *trip.Handler
	BusinessHandler *business.Handler
	HealthHandler   *health.Handler
	// JWTSecret signs the bearer tokens accepted by the business_app routes.
	JWTSecret []byte
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request id, logger, recoverer) are applied by the caller.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/management/health", cfg.HealthHandler.Health)

		// Traveller routes are public
		r.Route("/users_app", func(r chi.Router) {
			r.Post("/build_trip", cfg.TripHandler.BuildTrip)
			r.Get("/trips/{tripID}", cfg.TripHandler.GetTrip)
		})

		r.Route("/business_app", func(r chi.Router) {
			r.Use(appMiddleware.Authenticate(cfg.JWTSecret))
			r.Use(appMiddleware.RequireRole(appMiddleware.RoleAdmin))
			r.Post("/add_business", cfg.BusinessHandler.AddBusiness)
			r.Get("/businesses/{businessID}", cfg.BusinessHandler.GetBusiness)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	return r
}
