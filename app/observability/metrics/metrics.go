package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	TripRequestsTotal        metric.Int64Counter
	GenerationAttempts       metric.Int64Histogram
	ValidationErrorsTotal    metric.Int64Counter
	GeoLookupDurationSeconds metric.Float64Histogram
	DbQueryDurationSeconds   metric.Float64Histogram
	DbQueryErrorsTotal       metric.Int64Counter
	PublishedBusinessesTotal metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so it must run
// after the provider is installed to export anything.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("voyage")
		var err error
		m := &AppMetrics{}

		m.TripRequestsTotal, err = meter.Int64Counter(
			"trip_requests_total",
			metric.WithDescription("Total number of trip generation requests by outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_requests_total: %v", err)
		}

		m.GenerationAttempts, err = meter.Int64Histogram(
			"trip_generation_attempts",
			metric.WithDescription("Generative service attempts needed per trip request"),
			metric.WithUnit("{attempt}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_generation_attempts: %v", err)
		}

		m.ValidationErrorsTotal, err = meter.Int64Counter(
			"itinerary_validation_errors_total",
			metric.WithDescription("Validation errors found in generated itineraries by category"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_validation_errors_total: %v", err)
		}

		m.GeoLookupDurationSeconds, err = meter.Float64Histogram(
			"geo_lookup_duration_seconds",
			metric.WithDescription("Duration of place autocomplete and reverse geocode lookups in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create geo_lookup_duration_seconds: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		m.PublishedBusinessesTotal, err = meter.Int64Counter(
			"published_businesses_total",
			metric.WithDescription("Sponsor businesses charged for appearing in a generated trip"),
			metric.WithUnit("{business}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create published_businesses_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the global AppMetrics instance. Instruments are created against
// whatever MeterProvider is global on first use, so call InitAppMetrics after
// installing the exporter.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
