package container

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageRN-project/voyage/config"
	"github.com/voyageRN-project/voyage/internal/api/trip"
	"github.com/voyageRN-project/voyage/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

type countingInvoker struct {
	calls int
}

func (c *countingInvoker) Invoke(_ context.Context, _ string) (string, error) {
	c.calls++
	return "no plan today", nil
}

func TestNewLocator(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "voyage_container_test", r.UserAgent())
		_, _ = w.Write([]byte(`{"predictions":[{"description":"Uffizi Gallery, Florence, Italy"}],"status":"OK"}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Geo.AutocompleteURL = srv.URL
	cfg.Geo.UserAgent = "voyage_container_test"
	cfg.Geo.Timeout = 2 * time.Second
	cfg.Geo.CacheTTL = time.Minute

	locator := NewLocator(cfg, testLogger)
	for range 2 {
		predictions, err := locator.Autocomplete(context.Background(), "Uffizi Gallery")
		require.NoError(t, err)
		require.Len(t, predictions, 1)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewOrchestrator(t *testing.T) {
	cfg := &config.Config{}
	cfg.Generation.MaxAttempts = 2
	cfg.Geo.CacheTTL = time.Minute
	inv := &countingInvoker{}

	o := NewOrchestrator(cfg, testLogger, inv, NewLocator(cfg, testLogger))
	_, err := o.Run(context.Background(), trip.Plan{
		Request: types.TripRequest{
			Budget: "Moderate", Season: "spring", Participants: "2",
			Duration: "1 day", CountryCode: "IT", InterestPoints: []string{"museums"},
		},
		CountryName: "Italy",
		Days:        1,
	})
	assert.ErrorIs(t, err, types.ErrExhaustedRetries)
	assert.Equal(t, 2, inv.calls)
}
