package trip

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voyageRN-project/voyage/internal/types"
)

// PromptInput is everything one prompt is rendered from.
type PromptInput struct {
	Request         types.TripRequest
	CountryName     string
	Days            int
	Recommendations []types.RecommendedBusiness
	// Feedback holds the problems found in the previous attempt, empty on the first one.
	Feedback []string
}

// SchemaExample is the two-day skeleton the model is asked to follow.
func SchemaExample() types.GeneratedTrip {
	day := func(n int) types.DayItinerary {
		return types.DayItinerary{
			Day: n,
			MorningActivity: []types.Content{{
				Name:        "<exact name of the site>",
				Type:        "<type of activity>",
				Description: "<short description>",
				Latitude:    "<latitude>",
				Longitude:   "<longitude>",
			}},
			AfternoonActivity: []types.Content{{
				Name:        "<exact name of the site>",
				Type:        "<type of activity>",
				Description: "<short description>",
				Latitude:    "<latitude>",
				Longitude:   "<longitude>",
			}},
			EveningActivity: []types.Content{{
				Name:        "<exact name of the site>",
				Type:        "<type of activity>",
				Description: "<short description>",
				Latitude:    "<latitude>",
				Longitude:   "<longitude>",
			}},
			RestaurantsRecommendations: []types.RestaurantRecommendation{{
				Name:        "<exact name of the restaurant>",
				Type:        "<type of cuisine>",
				Description: "<short description>",
				Latitude:    "<latitude>",
				Longitude:   "<longitude>",
			}},
			AccommodationRecommendations: []types.AccommodationRecommendation{{
				Name:        "<exact name of the accommodation>",
				Type:        "<type of accommodation>",
				Description: "<short description>",
				Latitude:    "<latitude>",
				Longitude:   "<longitude>",
			}},
		}
	}
	return types.GeneratedTrip{TripItinerary: []types.DayItinerary{day(1), day(2)}}
}

var schemaExampleJSON = func() string {
	b, err := json.MarshalIndent(struct {
		TripItinerary []types.DayItinerary `json:"tripItinerary"`
	}{SchemaExample().TripItinerary}, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}()

// SchemaExampleJSON is the schema example exactly as it appears in the prompt.
func SchemaExampleJSON() string {
	return schemaExampleJSON
}

// Destination renders "city, area, country" leaving out what was not requested.
func Destination(countryName, area, city string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{city, area, countryName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ComposePrompt renders the prompt. Identical input yields identical text.
func ComposePrompt(in PromptInput) string {
	req := in.Request
	var b strings.Builder

	b.WriteString("You are an experienced travel planner. Build a day by day travel itinerary " +
		"for the trip described below, using real places only.\n\n")

	b.WriteString("Itinerary parameters:\n")
	fmt.Fprintf(&b, "- Duration: %s (%d days)\n", strings.TrimSpace(req.Duration), in.Days)
	fmt.Fprintf(&b, "- Destination: %s\n", Destination(in.CountryName, req.Area, req.City))
	fmt.Fprintf(&b, "- Season: %s\n", req.Season)
	fmt.Fprintf(&b, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "- Number of participants: %s\n", req.Participants)
	fmt.Fprintf(&b, "- Interest points: %s\n", strings.Join(req.InterestPoints, ", "))

	optional := []struct{ label, value string }{
		{"Accommodation type", req.AccommodationType},
		{"Transportation type", req.TransportationType},
		{"City", req.City},
		{"Area", req.Area},
	}
	var wroteOptional bool
	for _, o := range optional {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		if !wroteOptional {
			b.WriteString("\nAdditional preferences:\n")
			wroteOptional = true
		}
		fmt.Fprintf(&b, "- %s: %s\n", o.label, strings.TrimSpace(o.value))
	}

	if len(in.Recommendations) > 0 {
		b.WriteString("\nPlease include at least one of the following places in the itinerary, " +
			"using its name exactly as written:\n")
		for i, rec := range in.Recommendations {
			fmt.Fprintf(&b, "%d. %s (%s, %s)", i+1, rec.Name, rec.Type, rec.Country)
			if rec.Description != nil && strings.TrimSpace(*rec.Description) != "" {
				fmt.Fprintf(&b, ": %s", strings.TrimSpace(*rec.Description))
			}
			b.WriteString("\n")
		}
	}

	if len(in.Feedback) > 0 {
		b.WriteString("\nYour previous response was rejected for the following reasons. Fix every one of them:\n")
		for _, msg := range in.Feedback {
			fmt.Fprintf(&b, "- %s\n", msg)
		}
	}

	b.WriteString("\nRespond with a single JSON document in exactly this format:\n")
	b.WriteString(schemaExampleJSON)
	b.WriteString("\n\nFormatting rules:\n")
	fmt.Fprintf(&b, "- \"tripItinerary\" must contain exactly %d days, numbered from 1 in the \"day\" field.\n", in.Days)
	b.WriteString("- Every list must contain at least one item.\n")
	b.WriteString("- \"contentName\", \"restaurantName\" and \"accommodationName\" must contain only the proper name " +
		"of the place as it appears on a map, never a descriptive phrase.\n")
	b.WriteString("- Every item must carry its latitude and longitude as decimal numbers written as strings.\n")
	fmt.Fprintf(&b, "- Every place must be located in %s.\n", in.CountryName)
	b.WriteString("- Do not write anything outside the JSON document.\n")

	return b.String()
}
