package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/voyageRN-project/voyage/internal/api"
)

const pingTimeout = 2 * time.Second

// Pinger is anything that can report its own reachability, such as the pgx pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

type Handler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Health godoc
// @Summary      Service health
// @Tags         Management
// @Produce      json
// @Success      200 {object} health.Status
// @Failure      503 {object} health.Status
// @Router       /management/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Health check: database unreachable", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusServiceUnavailable, Status{Status: "degraded", Database: "unreachable"})
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, Status{Status: "ok", Database: "ok"})
}
