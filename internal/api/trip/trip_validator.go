package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voyageRN-project/voyage/internal/api/geo"
	"github.com/voyageRN-project/voyage/internal/types"
)

const (
	keyTripItinerary  = "tripItinerary"
	keyDay            = "day"
	keyMorning        = "morningActivity"
	keyAfternoon      = "afternoonActivity"
	keyEvening        = "eveningActivity"
	keyRestaurants    = "restaurantsRecommendations"
	keyAccommodations = "accommodationRecommendations"
)

var requiredDayKeys = []string{keyMorning, keyAfternoon, keyEvening, keyRestaurants, keyAccommodations}

// Target is what a document is validated against.
type Target struct {
	Days        int
	CountryCode string
	CountryName string
	City        string
}

// Validator checks a decoded document and returns the typed trip when it passes.
// A non-nil error means a collaborator failed, not that the document is invalid.
type Validator interface {
	Validate(ctx context.Context, doc Document, target Target) (*types.GeneratedTrip, []types.ValidationError, error)
}

var _ Validator = (*ItineraryValidator)(nil)

type ItineraryValidator struct {
	locator geo.Locator
	logger  *slog.Logger
}

func NewItineraryValidator(locator geo.Locator, logger *slog.Logger) *ItineraryValidator {
	return &ItineraryValidator{
		locator: locator,
		logger:  logger,
	}
}

// Validate runs the structural, completeness and geographic passes in order.
// The first two stop the attempt on any error; the geographic pass checks every item.
func (v *ItineraryValidator) Validate(ctx context.Context, doc Document, target Target) (*types.GeneratedTrip, []types.ValidationError, error) {
	ctx, span := otel.Tracer("ItineraryValidator").Start(ctx, "Validate", trace.WithAttributes(
		attribute.Int("trip.days", target.Days),
		attribute.String("trip.country_code", target.CountryCode),
	))
	defer span.End()

	if errs := StructuralPass(doc); len(errs) > 0 {
		span.SetAttributes(attribute.String("validation.failed_pass", "structural"))
		return nil, errs, nil
	}
	if errs := CompletenessPass(doc, target.Days); len(errs) > 0 {
		span.SetAttributes(attribute.String("validation.failed_pass", "completeness"))
		return nil, errs, nil
	}

	trip, errs := toGeneratedTrip(doc)
	if len(errs) > 0 {
		span.SetAttributes(attribute.String("validation.failed_pass", "shape"))
		return nil, errs, nil
	}

	errs, err := v.GeographicPass(ctx, trip, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Location lookup failed")
		return nil, nil, err
	}
	if len(errs) > 0 {
		span.SetAttributes(attribute.String("validation.failed_pass", "geographic"))
		return nil, errs, nil
	}

	span.SetStatus(codes.Ok, "Itinerary valid")
	return trip, nil, nil
}

// StructuralPass checks the document skeleton and stops at the first problem.
func StructuralPass(doc Document) []types.ValidationError {
	raw, ok := doc[keyTripItinerary]
	if !ok {
		return []types.ValidationError{{
			Message:  fmt.Sprintf("missing key %q in the response", keyTripItinerary),
			Category: types.CategoryMissingKey,
		}}
	}
	days, ok := raw.([]any)
	if !ok {
		return []types.ValidationError{{
			Message:  fmt.Sprintf("%q must be a list of days", keyTripItinerary),
			Category: types.CategoryWrongShape,
		}}
	}
	for i, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			return []types.ValidationError{{
				Message:  fmt.Sprintf("day %d of %q must be an object", i+1, keyTripItinerary),
				Category: types.CategoryWrongShape,
			}}
		}
		for _, key := range requiredDayKeys {
			if _, ok := day[key]; !ok {
				return []types.ValidationError{{
					Message:  fmt.Sprintf("missing key %q in day %d", key, i+1),
					Category: types.CategoryMissingKey,
				}}
			}
		}
	}
	return nil
}

// CompletenessPass checks the day count and that no day field is empty.
// Numeric fields such as "day" are never considered empty.
func CompletenessPass(doc Document, wantDays int) []types.ValidationError {
	days, _ := doc[keyTripItinerary].([]any)

	var errs []types.ValidationError
	if len(days) != wantDays {
		errs = append(errs, types.ValidationError{
			Message:  fmt.Sprintf("%q must contain exactly %d days, got %d", keyTripItinerary, wantDays, len(days)),
			Category: types.CategoryEmptyField,
		})
	}

	for i, d := range days {
		day, _ := d.(map[string]any)
		keys := make([]string, 0, len(day))
		for k := range day {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if isEmptyValue(day[key]) {
				errs = append(errs, types.ValidationError{
					Message:  fmt.Sprintf("field %q in day %d is empty", key, i+1),
					Category: types.CategoryEmptyField,
				})
			}
		}
	}
	return errs
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case json.Number, float64, bool:
		return false
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// GeographicPass locates every item of the trip. An item passes when a place
// autocomplete prediction for its name mentions the country (and the city when
// one was requested), or else when its coordinates reverse geocode to the
// requested country. Every failing item is reported.
func (v *ItineraryValidator) GeographicPass(ctx context.Context, trip *types.GeneratedTrip, target Target) ([]types.ValidationError, error) {
	ctx, span := otel.Tracer("ItineraryValidator").Start(ctx, "GeographicPass")
	defer span.End()

	var errs []types.ValidationError
	var checked int
	for i, day := range trip.TripItinerary {
		for _, place := range day.Places() {
			checked++
			ok, err := v.locate(ctx, place, target)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "Lookup failed")
				return nil, err
			}
			if ok {
				continue
			}
			name := strings.TrimSpace(place.Name)
			if name == "" {
				name = "unnamed item"
			}
			errs = append(errs, types.ValidationError{
				Message: fmt.Sprintf("%q in %q of day %d could not be located in %s",
					name, place.Slot, i+1, Destination(target.CountryName, "", target.City)),
				Category: types.CategoryInvalidLocation,
			})
		}
	}

	span.SetAttributes(
		attribute.Int("geo.items_checked", checked),
		attribute.Int("geo.items_invalid", len(errs)),
	)
	span.SetStatus(codes.Ok, "Geographic pass done")
	return errs, nil
}

func (v *ItineraryValidator) locate(ctx context.Context, place types.Place, target Target) (bool, error) {
	if name := strings.TrimSpace(place.Name); name != "" {
		predictions, err := v.locator.Autocomplete(ctx, name)
		if err != nil {
			return false, err
		}
		if predictionsMatch(predictions, target) {
			return true, nil
		}
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(place.Latitude), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(place.Longitude), 64)
	if errLat != nil || errLon != nil {
		v.logger.DebugContext(ctx, "Item has no usable coordinates",
			slog.String("name", place.Name),
			slog.String("latitude", place.Latitude),
			slog.String("longitude", place.Longitude))
		return false, nil
	}

	addr, err := v.locator.Reverse(ctx, lat, lon)
	if err != nil {
		return false, err
	}
	return addr.CountryCode != "" && strings.EqualFold(addr.CountryCode, target.CountryCode), nil
}

func predictionsMatch(predictions []geo.Prediction, target Target) bool {
	country := strings.ToLower(target.CountryName)
	city := strings.ToLower(strings.TrimSpace(target.City))
	for _, p := range predictions {
		desc := strings.ToLower(p.Description)
		if !strings.Contains(desc, country) {
			continue
		}
		if city == "" || strings.Contains(desc, city) {
			return true
		}
	}
	return false
}

// toGeneratedTrip builds the typed trip from a document that passed the
// structural and completeness passes. Coordinates written as numbers keep
// their textual form.
func toGeneratedTrip(doc Document) (*types.GeneratedTrip, []types.ValidationError) {
	days := doc[keyTripItinerary].([]any)
	trip := &types.GeneratedTrip{TripItinerary: make([]types.DayItinerary, 0, len(days))}

	var errs []types.ValidationError
	shapeErr := func(format string, args ...any) {
		errs = append(errs, types.ValidationError{Message: fmt.Sprintf(format, args...), Category: types.CategoryWrongShape})
	}

	for i, d := range days {
		raw := d.(map[string]any)
		day := types.DayItinerary{Day: i + 1}
		if n, ok := raw[keyDay].(json.Number); ok {
			if v, err := n.Int64(); err == nil {
				day.Day = int(v)
			} else {
				shapeErr("field %q in day %d must be an integer", keyDay, i+1)
			}
		}

		items := func(key string) []map[string]any {
			list, ok := raw[key].([]any)
			if !ok {
				shapeErr("field %q in day %d must be a list", key, i+1)
				return nil
			}
			out := make([]map[string]any, 0, len(list))
			for j, it := range list {
				m, ok := it.(map[string]any)
				if !ok {
					shapeErr("item %d of %q in day %d must be an object", j+1, key, i+1)
					continue
				}
				out = append(out, m)
			}
			return out
		}

		for _, slot := range []struct {
			key string
			dst *[]types.Content
		}{
			{keyMorning, &day.MorningActivity},
			{keyAfternoon, &day.AfternoonActivity},
			{keyEvening, &day.EveningActivity},
		} {
			for _, m := range items(slot.key) {
				*slot.dst = append(*slot.dst, types.Content{
					Name:        text(m["contentName"]),
					Type:        text(m["contentType"]),
					Description: text(m["contentDescription"]),
					Latitude:    text(m["contentLatitude"]),
					Longitude:   text(m["contentLongitude"]),
				})
			}
		}
		for _, m := range items(keyRestaurants) {
			day.RestaurantsRecommendations = append(day.RestaurantsRecommendations, types.RestaurantRecommendation{
				Name:        text(m["restaurantName"]),
				Type:        text(m["restaurantType"]),
				Description: text(m["restaurantDescription"]),
				Latitude:    text(m["restaurantLatitude"]),
				Longitude:   text(m["restaurantLongitude"]),
			})
		}
		for _, m := range items(keyAccommodations) {
			day.AccommodationRecommendations = append(day.AccommodationRecommendations, types.AccommodationRecommendation{
				Name:        text(m["accommodationName"]),
				Type:        text(m["accommodationType"]),
				Description: text(m["accommodationDescription"]),
				Latitude:    text(m["accommodationLatitude"]),
				Longitude:   text(m["accommodationLongitude"]),
			})
		}

		trip.TripItinerary = append(trip.TripItinerary, day)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return trip, nil
}

func text(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
