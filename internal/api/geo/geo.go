package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/biter777/countries"

	"github.com/voyageRN-project/voyage/internal/types"
)

// Prediction is one place-autocomplete candidate.
type Prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id,omitempty"`
}

// Address is the part of a reverse-geocode result the validator needs.
type Address struct {
	CountryCode string `json:"country_code"`
	Country     string `json:"country"`
	City        string `json:"city,omitempty"`
}

// PlaceAutocompleter resolves a place name into candidate descriptions.
// An empty slice means no match; an error means the service itself failed.
type PlaceAutocompleter interface {
	Autocomplete(ctx context.Context, input string) ([]Prediction, error)
}

// ReverseGeocoder resolves coordinates into an address.
// A zero Address means no match; an error means the service itself failed.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (Address, error)
}

// Locator is the capability the itinerary validator depends on.
type Locator interface {
	PlaceAutocompleter
	ReverseGeocoder
}

// CountryName returns the English short name for an ISO 3166-1 alpha-2 code.
func CountryName(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) != 2 {
		return "", fmt.Errorf("%w: %q", types.ErrCountryResolution, code)
	}
	c := countries.ByName(strings.ToUpper(code))
	if c == countries.Unknown {
		return "", fmt.Errorf("%w: %q", types.ErrCountryResolution, code)
	}
	return c.String(), nil
}
