package geo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voyageRN-project/voyage/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

func TestCountryName(t *testing.T) {
	t.Run("Known codes", func(t *testing.T) {
		name, err := CountryName("IT")
		require.NoError(t, err)
		assert.Equal(t, "Italy", name)

		name, err = CountryName(" fr ")
		require.NoError(t, err)
		assert.Equal(t, "France", name)
	})

	t.Run("Unknown codes", func(t *testing.T) {
		for _, code := range []string{"", "XX", "ITA", "1"} {
			_, err := CountryName(code)
			assert.ErrorIs(t, err, types.ErrCountryResolution, code)
		}
	})
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient(testLogger, WithTimeout(3*time.Second), WithAutocompleteURL(""))
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.Equal(t, DefaultAutocompleteURL, c.autocompleteURL)

	c = NewClient(testLogger, WithTimeout(0))
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
}

func TestClient_Autocomplete(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns predictions", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "The Eiffel Tower", r.URL.Query().Get("input"))
			assert.Equal(t, "voyage_test", r.UserAgent())
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"predictions": [
				{"description": "Eiffel Tower, Avenue Gustave Eiffel, Paris, France", "place_id": "abc"},
				{"description": "Eiffel Tower, Las Vegas Boulevard South, Las Vegas, NV, USA"}
			], "status": "OK"}`))
		}))
		defer srv.Close()

		c := NewClient(testLogger, WithAutocompleteURL(srv.URL), WithUserAgent("voyage_test"), WithHTTPClient(srv.Client()))
		predictions, err := c.Autocomplete(ctx, "The Eiffel Tower")
		require.NoError(t, err)
		require.Len(t, predictions, 2)
		assert.Contains(t, predictions[0].Description, "Paris")
		assert.Equal(t, "abc", predictions[0].PlaceID)
	})

	t.Run("Empty predictions is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"predictions": [], "status": "ZERO_RESULTS"}`))
		}))
		defer srv.Close()

		c := NewClient(testLogger, WithAutocompleteURL(srv.URL))
		predictions, err := c.Autocomplete(ctx, "Nowhere Castle")
		require.NoError(t, err)
		assert.Empty(t, predictions)
	})

	t.Run("Rejected status is a lookup failure", func(t *testing.T) {
		for _, status := range []string{"REQUEST_DENIED", "OVER_QUERY_LIMIT", "INVALID_REQUEST", "UNKNOWN_ERROR"} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"predictions": [], "status": "` + status + `", "error_message": "quota"}`))
			}))

			c := NewClient(testLogger, WithAutocompleteURL(srv.URL))
			predictions, err := c.Autocomplete(ctx, "Colosseum")
			srv.Close()

			require.Error(t, err, status)
			assert.ErrorIs(t, err, types.ErrThirdPartyLookup, status)
			assert.Contains(t, err.Error(), status)
			assert.Nil(t, predictions, status)
		}
	})

	t.Run("Non-200 is a lookup failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(testLogger, WithAutocompleteURL(srv.URL))
		_, err := c.Autocomplete(ctx, "Colosseum")
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrThirdPartyLookup)
	})

	t.Run("Transport failure is a lookup failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := NewClient(testLogger, WithAutocompleteURL(srv.URL))
		_, err := c.Autocomplete(ctx, "Colosseum")
		assert.ErrorIs(t, err, types.ErrThirdPartyLookup)
	})
}

func TestClient_Reverse(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the country code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "43.509632", q.Get("lat"))
			assert.Equal(t, "11.081778", q.Get("lon"))
			assert.Equal(t, "jsonv2", q.Get("format"))
			assert.Equal(t, defaultUserAgent, r.UserAgent())
			_, _ = w.Write([]byte(`{"display_name": "Castellina in Chianti, Siena, Toscana, Italia",
				"address": {"country": "Italy", "country_code": "it"}}`))
		}))
		defer srv.Close()

		c := NewClient(testLogger, WithReverseGeocodeURL(srv.URL))
		addr, err := c.Reverse(ctx, 43.509632, 11.081778)
		require.NoError(t, err)
		assert.Equal(t, "it", addr.CountryCode)
		assert.Equal(t, "Italy", addr.Country)
	})

	t.Run("Error body means no match", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
		}))
		defer srv.Close()

		c := NewClient(testLogger, WithReverseGeocodeURL(srv.URL))
		addr, err := c.Reverse(ctx, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, addr.CountryCode)
	})

	t.Run("Malformed body is a lookup failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>rate limited</html>`))
		}))
		defer srv.Close()

		c := NewClient(testLogger, WithReverseGeocodeURL(srv.URL))
		_, err := c.Reverse(ctx, 41.9, 12.5)
		assert.ErrorIs(t, err, types.ErrThirdPartyLookup)
	})
}

type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Prediction), args.Error(1)
}

func (m *MockLocator) Reverse(ctx context.Context, lat, lon float64) (Address, error) {
	args := m.Called(ctx, lat, lon)
	return args.Get(0).(Address), args.Error(1)
}

func TestCachedLocator(t *testing.T) {
	ctx := context.Background()

	t.Run("Autocomplete is read through once", func(t *testing.T) {
		next := new(MockLocator)
		next.On("Autocomplete", mock.Anything, "Colosseum").
			Return([]Prediction{{Description: "Colosseum, Rome, Italy"}}, nil).Once()

		c := NewCachedLocator(next, time.Minute, testLogger)
		for i := 0; i < 3; i++ {
			predictions, err := c.Autocomplete(ctx, "Colosseum")
			require.NoError(t, err)
			require.Len(t, predictions, 1)
		}
		next.AssertExpectations(t)
	})

	t.Run("Reverse is read through once", func(t *testing.T) {
		next := new(MockLocator)
		next.On("Reverse", mock.Anything, 41.8902, 12.4922).Return(Address{CountryCode: "it"}, nil).Once()

		c := NewCachedLocator(next, time.Minute, testLogger)
		for i := 0; i < 2; i++ {
			addr, err := c.Reverse(ctx, 41.8902, 12.4922)
			require.NoError(t, err)
			assert.Equal(t, "it", addr.CountryCode)
		}
		next.AssertExpectations(t)
	})

	t.Run("Failures are not cached", func(t *testing.T) {
		boom := errors.New("boom")
		next := new(MockLocator)
		next.On("Autocomplete", mock.Anything, "Uffizi").Return(nil, boom).Twice()

		c := NewCachedLocator(next, time.Minute, testLogger)
		_, err := c.Autocomplete(ctx, "Uffizi")
		assert.ErrorIs(t, err, boom)
		_, err = c.Autocomplete(ctx, "Uffizi")
		assert.ErrorIs(t, err, boom)
		next.AssertExpectations(t)
	})
}
