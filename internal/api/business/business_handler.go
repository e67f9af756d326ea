package business

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/voyageRN-project/voyage/internal/api"
	"github.com/voyageRN-project/voyage/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service BusinessService
}

func NewBusinessHandler(service BusinessService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// AddBusiness godoc
// @Summary      Onboard a sponsor business
// @Description  Creates a business and its paying client with the bought credits.
// @Tags         Business
// @Accept       json
// @Produce      json
// @Param        business body types.NewBusinessRequest true "Business and client details"
// @Success      201 {object} types.BusinessWithClient
// @Failure      400 {object} api.Response "Missing or invalid field"
// @Failure      401 {object} api.Response "Unauthorized"
// @Failure      403 {object} api.Response "Forbidden"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /business_app/add_business [post]
func (h *Handler) AddBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "AddBusiness")
	defer span.End()

	l := h.logger.With(slog.String("method", "AddBusiness"))

	var req types.NewBusinessRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid onboarding body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.AddBusiness(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		status := api.StatusFromError(err)
		msg := "Failed to create business"
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		api.ErrorResponse(w, r, status, msg)
		return
	}

	span.SetAttributes(attribute.String("business.id", created.Business.ID.String()))
	span.SetStatus(codes.Ok, "Business created")
	api.WriteJSONResponse(w, r, http.StatusCreated, created)
}

// GetBusiness godoc
// @Summary      Get a sponsor business
// @Description  Returns the business with its client credit ledger.
// @Tags         Business
// @Produce      json
// @Param        businessID path string true "Business ID"
// @Success      200 {object} types.BusinessWithClient
// @Failure      400 {object} api.Response "Invalid business ID"
// @Failure      404 {object} api.Response "Business not found"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /business_app/businesses/{businessID} [get]
func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "GetBusiness")
	defer span.End()

	businessID, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid business ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid business ID format")
		return
	}

	b, err := h.service.GetBusiness(ctx, businessID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Business not found")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve business")
		return
	}

	span.SetStatus(codes.Ok, "Business returned")
	api.WriteJSONResponse(w, r, http.StatusOK, b)
}
