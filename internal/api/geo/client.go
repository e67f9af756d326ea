package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/voyageRN-project/voyage/app/observability/metrics"
	"github.com/voyageRN-project/voyage/internal/types"
)

const (
	DefaultAutocompleteURL   = "https://restaurant-api.wolt.com/v1/google/places/autocomplete/json"
	DefaultReverseGeocodeURL = "https://nominatim.openstreetmap.org/reverse"
	defaultUserAgent         = "voyage_project"
	defaultTimeout           = 10 * time.Second
	maxResponseBytes         = 1 << 20
)

var _ Locator = (*Client)(nil)

// ClientOption configures the client.
type ClientOption func(*Client)

// WithAutocompleteURL overrides the place-autocomplete endpoint.
func WithAutocompleteURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.autocompleteURL = u
		}
	}
}

// WithReverseGeocodeURL overrides the reverse-geocode endpoint.
func WithReverseGeocodeURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.reverseURL = u
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every lookup. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent sent to both services. Nominatim rejects anonymous clients.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// Client talks to the place-autocomplete and reverse-geocode HTTP services.
type Client struct {
	autocompleteURL string
	reverseURL      string
	userAgent       string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewClient(logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		autocompleteURL: DefaultAutocompleteURL,
		reverseURL:      DefaultReverseGeocodeURL,
		userAgent:       defaultUserAgent,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	ctx, span := otel.Tracer("GeoClient").Start(ctx, "Autocomplete", trace.WithAttributes(
		attribute.String("geo.input", input),
	))
	defer span.End()

	q := url.Values{}
	q.Set("input", input)

	var body struct {
		Predictions  []Prediction `json:"predictions"`
		Status       string       `json:"status"`
		ErrorMessage string       `json:"error_message"`
	}
	if err := c.get(ctx, "autocomplete", c.autocompleteURL, q, &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Autocomplete lookup failed")
		return nil, err
	}

	// Places answers 200 for quota and key problems too; only OK and ZERO_RESULTS carry an answer.
	switch body.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		err := fmt.Errorf("%w: autocomplete returned status %s", types.ErrThirdPartyLookup, body.Status)
		c.logger.ErrorContext(ctx, "Autocomplete lookup rejected",
			slog.String("status", body.Status),
			slog.String("reason", body.ErrorMessage))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Autocomplete lookup rejected")
		return nil, err
	}

	span.SetAttributes(attribute.Int("geo.predictions", len(body.Predictions)))
	span.SetStatus(codes.Ok, "Autocomplete lookup done")
	return body.Predictions, nil
}

func (c *Client) Reverse(ctx context.Context, lat, lon float64) (Address, error) {
	ctx, span := otel.Tracer("GeoClient").Start(ctx, "Reverse", trace.WithAttributes(
		attribute.Float64("geo.lat", lat),
		attribute.Float64("geo.lon", lon),
	))
	defer span.End()

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "jsonv2")
	q.Set("accept-language", "en")

	var body struct {
		Error   string  `json:"error"`
		Address Address `json:"address"`
	}
	if err := c.get(ctx, "reverse", c.reverseURL, q, &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Reverse lookup failed")
		return Address{}, err
	}

	// Nominatim answers 200 with an error body for coordinates in the sea and similar.
	if body.Error != "" {
		c.logger.DebugContext(ctx, "Reverse geocode found no address",
			slog.Float64("lat", lat), slog.Float64("lon", lon), slog.String("reason", body.Error))
		span.SetStatus(codes.Ok, "No address")
		return Address{}, nil
	}

	span.SetAttributes(attribute.String("geo.country_code", body.Address.CountryCode))
	span.SetStatus(codes.Ok, "Reverse lookup done")
	return body.Address, nil
}

func (c *Client) get(ctx context.Context, lookup, endpoint string, q url.Values, dst any) error {
	start := time.Now()
	defer func() {
		metrics.Get().GeoLookupDurationSeconds.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("lookup", lookup)))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s request: %w", types.ErrThirdPartyLookup, lookup, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Geo lookup request failed", slog.String("lookup", lookup), slog.Any("error", err))
		return fmt.Errorf("%w: %s request failed: %w", types.ErrThirdPartyLookup, lookup, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to read %s response: %w", types.ErrThirdPartyLookup, lookup, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "Geo lookup returned non-200",
			slog.String("lookup", lookup),
			slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %s returned status %d", types.ErrThirdPartyLookup, lookup, resp.StatusCode)
	}

	if err = json.Unmarshal(respBody, dst); err != nil {
		return fmt.Errorf("%w: failed to unmarshal %s response: %w", types.ErrThirdPartyLookup, lookup, err)
	}
	return nil
}
