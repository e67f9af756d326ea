package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   Status
	}{
		{"Database reachable", nil, http.StatusOK, Status{Status: "ok", Database: "ok"}},
		{"Database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, Status{Status: "degraded", Database: "unreachable"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(pingFunc(func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return tt.pingErr
			}), testLogger)

			rr := httptest.NewRecorder()
			h.Health(rr, httptest.NewRequest(http.MethodGet, "/api/v1/management/health", nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			var body Status
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
