package trip

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/voyageRN-project/voyage/internal/api"
	"github.com/voyageRN-project/voyage/internal/types"
)

const maxFormMemory = 1 << 20

type Handler struct {
	logger  *slog.Logger
	service TripService
}

func NewTripHandler(service TripService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// BuildTrip godoc
// @Summary      Build a trip itinerary
// @Description  Generates a validated day by day itinerary. Accepts JSON or form fields; interest-points may be a comma separated string.
// @Tags         Trips
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        trip body types.TripRequest true "Trip parameters"
// @Success      200 {object} types.TripResponse
// @Failure      400 {object} api.Response "Missing key or unknown country code"
// @Failure      500 {object} api.Response "No valid itinerary could be generated"
// @Failure      502 {object} api.Response "Third party service failed"
// @Router       /users_app/build_trip [post]
func (h *Handler) BuildTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "BuildTrip")
	defer span.End()

	l := h.logger.With(slog.String("method", "BuildTrip"))

	req, err := decodeTripRequest(w, r)
	if err != nil {
		l.WarnContext(ctx, "Invalid trip request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := h.service.GenerateTrip(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		status := api.StatusFromError(err)
		api.ErrorResponse(w, r, status, tripErrorMessage(status, err))
		return
	}

	span.SetAttributes(attribute.String("trip.id", trip.ID.String()))
	span.SetStatus(codes.Ok, "Trip built")
	api.WriteJSONResponse(w, r, http.StatusOK, types.TripResponse{
		TripID:        trip.ID,
		TripItinerary: trip.TripItinerary,
	})
}

// GetTrip godoc
// @Summary      Get a generated trip
// @Tags         Trips
// @Produce      json
// @Param        tripID path string true "Trip ID"
// @Success      200 {object} types.GeneratedTripRecord
// @Failure      400 {object} api.Response "Invalid trip ID"
// @Failure      404 {object} api.Response "Trip not found"
// @Router       /users_app/trips/{tripID} [get]
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "GetTrip")
	defer span.End()

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid trip ID format")
		return
	}

	rec, err := h.service.GetTrip(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Trip not found")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve trip")
		return
	}

	span.SetStatus(codes.Ok, "Trip returned")
	api.WriteJSONResponse(w, r, http.StatusOK, rec)
}

func tripErrorMessage(status int, err error) string {
	switch {
	case status == http.StatusBadRequest:
		return err.Error()
	case errors.Is(err, types.ErrExhaustedRetries):
		return types.ErrExhaustedRetries.Error()
	case status == http.StatusBadGateway:
		return "A third party service failed, please try again later"
	default:
		return "Failed to build trip"
	}
}

func decodeTripRequest(w http.ResponseWriter, r *http.Request) (types.TripRequest, error) {
	var req types.TripRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxFormMemory)
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(maxFormMemory)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return req, err
		}
		req = types.TripRequest{
			Budget:             r.PostFormValue("budget"),
			Season:             r.PostFormValue("season"),
			Participants:       r.PostFormValue("participants"),
			Duration:           r.PostFormValue("duration"),
			CountryCode:        r.PostFormValue("country-code"),
			AccommodationType:  r.PostFormValue("accommodation_type"),
			TransportationType: r.PostFormValue("transportation_type"),
			City:               r.PostFormValue("city"),
			Area:               r.PostFormValue("area"),
		}
		for _, v := range r.PostForm["interest-points"] {
			req.InterestPoints = append(req.InterestPoints, types.SplitCommaList(v)...)
		}
		return req, nil
	default:
		err := api.DecodeJSONBody(w, r, &req)
		return req, err
	}
}
