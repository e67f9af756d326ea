package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripRequest is the traveller's input for a single itinerary generation.
type TripRequest struct {
	Budget       string `json:"budget" example:"Moderate"`
	Season       string `json:"season" example:"summer"`
	Participants string `json:"participants" example:"2"`
	// Free text, the first integer token is the day count.
	Duration string `json:"duration" example:"3 days"`
	// ISO 3166-1 alpha-2.
	CountryCode        string     `json:"country-code" example:"IT"`
	InterestPoints     StringList `json:"interest-points" swaggertype:"array,string" example:"wineries,day trips"`
	AccommodationType  string     `json:"accommodation_type,omitempty" example:"hotel"`
	TransportationType string     `json:"transportation_type,omitempty" example:"car"`
	City               string     `json:"city,omitempty" example:"Florence"`
	Area               string     `json:"area,omitempty" example:"Tuscany"`
}

// StringList decodes from either a JSON array of strings or one comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("expected a list of strings or a comma separated string: %w", err)
	}
	*l = SplitCommaList(joined)
	return nil
}

// SplitCommaList turns "a, b,c" into [a b c], dropping empty entries.
func SplitCommaList(raw string) StringList {
	var out StringList
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Content is a single activity inside a day slot.
type Content struct {
	Name        string `json:"contentName"`
	Type        string `json:"contentType"`
	Description string `json:"contentDescription,omitempty"`
	Latitude    string `json:"contentLatitude"`
	Longitude   string `json:"contentLongitude"`
}

type RestaurantRecommendation struct {
	Name        string `json:"restaurantName"`
	Type        string `json:"restaurantType"`
	Description string `json:"restaurantDescription,omitempty"`
	Latitude    string `json:"restaurantLatitude"`
	Longitude   string `json:"restaurantLongitude"`
}

type AccommodationRecommendation struct {
	Name        string `json:"accommodationName"`
	Type        string `json:"accommodationType"`
	Description string `json:"accommodationDescription,omitempty"`
	Latitude    string `json:"accommodationLatitude"`
	Longitude   string `json:"accommodationLongitude"`
}

// DayItinerary is one day of the generated plan.
type DayItinerary struct {
	Day                          int                           `json:"day"`
	MorningActivity              []Content                     `json:"morningActivity"`
	AfternoonActivity            []Content                     `json:"afternoonActivity"`
	EveningActivity              []Content                     `json:"eveningActivity"`
	RestaurantsRecommendations   []RestaurantRecommendation    `json:"restaurantsRecommendations"`
	AccommodationRecommendations []AccommodationRecommendation `json:"accommodationRecommendations"`
}

// GeneratedTrip is a fully validated itinerary.
type GeneratedTrip struct {
	ID            uuid.UUID      `json:"-"`
	TripItinerary []DayItinerary `json:"tripItinerary"`
}

// Place is the common view over the three item kinds, used for location checks
// and for matching sponsor names.
type Place struct {
	Slot      string
	Name      string
	Latitude  string
	Longitude string
}

// Places flattens every item of the day in slot order.
func (d DayItinerary) Places() []Place {
	var places []Place
	for _, slot := range []struct {
		name  string
		items []Content
	}{
		{"morningActivity", d.MorningActivity},
		{"afternoonActivity", d.AfternoonActivity},
		{"eveningActivity", d.EveningActivity},
	} {
		for _, c := range slot.items {
			places = append(places, Place{Slot: slot.name, Name: c.Name, Latitude: c.Latitude, Longitude: c.Longitude})
		}
	}
	for _, r := range d.RestaurantsRecommendations {
		places = append(places, Place{Slot: "restaurantsRecommendations", Name: r.Name, Latitude: r.Latitude, Longitude: r.Longitude})
	}
	for _, a := range d.AccommodationRecommendations {
		places = append(places, Place{Slot: "accommodationRecommendations", Name: a.Name, Latitude: a.Latitude, Longitude: a.Longitude})
	}
	return places
}

// GeneratedTripRecord is what the store keeps for every successful generation.
type GeneratedTripRecord struct {
	ID                  uuid.UUID       `json:"id"`
	Destination         string          `json:"destination"`
	Duration            string          `json:"duration"`
	Body                json.RawMessage `json:"body"`
	PublishedBusinesses []uuid.UUID     `json:"business_ids"`
	CreatedAt           time.Time       `json:"created_at"`
}

// TripResponse is the HTTP payload returned to the traveller.
type TripResponse struct {
	TripID        uuid.UUID      `json:"trip_id"`
	TripItinerary []DayItinerary `json:"trip_itinerary"`
}
