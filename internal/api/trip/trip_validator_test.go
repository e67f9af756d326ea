package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageRN-project/voyage/internal/api/geo"
	"github.com/voyageRN-project/voyage/internal/types"
)

var italy = Target{Days: 2, CountryCode: "IT", CountryName: "Italy"}

func TestStructuralPass(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing tripItinerary short-circuits", func(t *testing.T) {
		loc := locatorFor("Italy")
		v := NewItineraryValidator(loc, testLogger)

		trip, errs, err := v.Validate(ctx, decode(t, `{"itinerary": []}`), italy)
		require.NoError(t, err)
		assert.Nil(t, trip)
		require.Len(t, errs, 1)
		assert.Equal(t, types.CategoryMissingKey, errs[0].Category)
		assert.Contains(t, errs[0].Message, "tripItinerary")
		assert.Empty(t, loc.acCalls)
		assert.Empty(t, loc.revCalls)
	})

	t.Run("tripItinerary not a list", func(t *testing.T) {
		errs := StructuralPass(decode(t, `{"tripItinerary": {"day": 1}}`))
		require.Len(t, errs, 1)
		assert.Equal(t, types.CategoryWrongShape, errs[0].Category)
	})

	t.Run("Day not an object", func(t *testing.T) {
		errs := StructuralPass(decode(t, `{"tripItinerary": ["day one"]}`))
		require.Len(t, errs, 1)
		assert.Equal(t, types.CategoryWrongShape, errs[0].Category)
	})

	t.Run("Missing day key stops at the first one", func(t *testing.T) {
		raw := tripJSON(t, 2, func(i int, day map[string]any) {
			if i == 2 {
				delete(day, "eveningActivity")
				delete(day, "accommodationRecommendations")
			}
		})
		errs := StructuralPass(decode(t, raw))
		require.Len(t, errs, 1)
		assert.Equal(t, types.CategoryMissingKey, errs[0].Category)
		assert.Equal(t, `missing key "eveningActivity" in day 2`, errs[0].Message)
	})

	t.Run("Complete document passes", func(t *testing.T) {
		assert.Empty(t, StructuralPass(decode(t, tripJSON(t, 3, nil))))
	})
}

func TestCompletenessPass(t *testing.T) {
	t.Run("Day count mismatch regardless of content", func(t *testing.T) {
		for _, tc := range []struct{ got, want int }{{2, 3}, {4, 3}, {0, 1}} {
			raw := tripJSON(t, tc.got, nil)
			errs := CompletenessPass(decode(t, raw), tc.want)
			require.NotEmpty(t, errs, "%d days for %d", tc.got, tc.want)
			assert.Equal(t, types.CategoryEmptyField, errs[0].Category)
			assert.Contains(t, errs[0].Message, fmt.Sprintf("exactly %d days, got %d", tc.want, tc.got))
		}
	})

	t.Run("Empty fields are reported per day", func(t *testing.T) {
		raw := tripJSON(t, 2, func(i int, day map[string]any) {
			if i == 1 {
				day["afternoonActivity"] = []any{}
			}
			if i == 2 {
				day["restaurantsRecommendations"] = nil
				day["notes"] = "  "
			}
		})
		errs := CompletenessPass(decode(t, raw), 2)
		require.Len(t, errs, 3)
		assert.Equal(t, `field "afternoonActivity" in day 1 is empty`, errs[0].Message)
		assert.Equal(t, `field "notes" in day 2 is empty`, errs[1].Message)
		assert.Equal(t, `field "restaurantsRecommendations" in day 2 is empty`, errs[2].Message)
	})

	t.Run("Numeric fields are exempt", func(t *testing.T) {
		raw := tripJSON(t, 1, func(_ int, day map[string]any) {
			day["day"] = 0
		})
		assert.Empty(t, CompletenessPass(decode(t, raw), 1))
	})
}

func TestGeographicPass(t *testing.T) {
	ctx := context.Background()

	t.Run("Name lookup match skips the fallback", func(t *testing.T) {
		loc := locatorFor("Italy")
		v := NewItineraryValidator(loc, testLogger)

		trip, errs, err := v.Validate(ctx, decode(t, tripJSON(t, 2, nil)), italy)
		require.NoError(t, err)
		assert.Empty(t, errs)
		require.NotNil(t, trip)
		assert.Len(t, trip.TripItinerary, 2)
		assert.Len(t, loc.acCalls, 10)
		assert.Empty(t, loc.revCalls)
	})

	t.Run("Falls back to coordinates when the name does not match", func(t *testing.T) {
		loc := &fakeLocator{
			autocomplete: func(name string) ([]geo.Prediction, error) {
				return []geo.Prediction{{Description: name + ", Las Vegas, NV, USA"}}, nil
			},
			reverse: func(lat, lon float64) (geo.Address, error) {
				return geo.Address{CountryCode: "it"}, nil
			},
		}
		v := NewItineraryValidator(loc, testLogger)

		trip, errs, err := v.Validate(ctx, decode(t, tripJSON(t, 2, nil)), italy)
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.NotNil(t, trip)
		assert.Len(t, loc.revCalls, 10)
	})

	t.Run("Falls back to coordinates when the name is absent", func(t *testing.T) {
		raw := tripJSON(t, 1, func(_ int, day map[string]any) {
			day["morningActivity"] = items("content", "", "43.7731", "11.2560")
		})
		loc := locatorFor("Italy")
		loc.reverse = func(lat, lon float64) (geo.Address, error) {
			return geo.Address{CountryCode: "IT"}, nil
		}
		v := NewItineraryValidator(loc, testLogger)

		_, errs, err := v.Validate(ctx, decode(t, raw), Target{Days: 1, CountryCode: "IT", CountryName: "Italy"})
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Len(t, loc.acCalls, 4)
		assert.Equal(t, []string{"43.7731,11.256"}, loc.revCalls)
	})

	t.Run("Reports every item that fails both lookups", func(t *testing.T) {
		bad := map[string]bool{"Morning Site 1": true, "Hotel 1": true, "Evening Site 2": true}
		loc := &fakeLocator{
			autocomplete: func(name string) ([]geo.Prediction, error) {
				if bad[name] {
					return nil, nil
				}
				return []geo.Prediction{{Description: name + ", Florence, Italy"}}, nil
			},
			reverse: func(lat, lon float64) (geo.Address, error) {
				return geo.Address{CountryCode: "fr"}, nil
			},
		}
		v := NewItineraryValidator(loc, testLogger)

		trip, errs, err := v.Validate(ctx, decode(t, tripJSON(t, 2, nil)), italy)
		require.NoError(t, err)
		assert.Nil(t, trip)
		require.Len(t, errs, 3)
		for _, e := range errs {
			assert.Equal(t, types.CategoryInvalidLocation, e.Category)
		}
		assert.Contains(t, errs[0].Message, `"Morning Site 1" in "morningActivity" of day 1`)
		assert.Contains(t, errs[1].Message, `"Hotel 1" in "accommodationRecommendations" of day 1`)
		assert.Contains(t, errs[2].Message, `"Evening Site 2" in "eveningActivity" of day 2`)
		assert.Len(t, loc.acCalls, 10)
		assert.Len(t, loc.revCalls, 3)
	})

	t.Run("Requested city must appear in the prediction", func(t *testing.T) {
		loc := &fakeLocator{
			autocomplete: func(name string) ([]geo.Prediction, error) {
				return []geo.Prediction{{Description: name + ", Rome, Italy"}}, nil
			},
		}
		v := NewItineraryValidator(loc, testLogger)
		target := Target{Days: 1, CountryCode: "IT", CountryName: "Italy", City: "Florence"}

		_, errs, err := v.Validate(ctx, decode(t, tripJSON(t, 1, nil)), target)
		require.NoError(t, err)
		assert.Len(t, errs, 5)
		assert.True(t, strings.Contains(errs[0].Message, "Florence, Italy"))
	})

	t.Run("Unparsable coordinates fail the fallback", func(t *testing.T) {
		raw := tripJSON(t, 1, func(_ int, day map[string]any) {
			day["eveningActivity"] = items("content", "Nowhere Bar", "north-ish", "11.2")
		})
		loc := &fakeLocator{
			autocomplete: func(name string) ([]geo.Prediction, error) {
				if name == "Nowhere Bar" {
					return nil, nil
				}
				return []geo.Prediction{{Description: name + ", Italy"}}, nil
			},
		}
		v := NewItineraryValidator(loc, testLogger)

		_, errs, err := v.Validate(ctx, decode(t, raw), Target{Days: 1, CountryCode: "IT", CountryName: "Italy"})
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Nowhere Bar")
		assert.Empty(t, loc.revCalls)
	})

	t.Run("Lookup service failure is not an invalid location", func(t *testing.T) {
		lookupErr := fmt.Errorf("%w: autocomplete returned status 503", types.ErrThirdPartyLookup)
		loc := &fakeLocator{
			autocomplete: func(string) ([]geo.Prediction, error) { return nil, lookupErr },
		}
		v := NewItineraryValidator(loc, testLogger)

		trip, errs, err := v.Validate(ctx, decode(t, tripJSON(t, 2, nil)), italy)
		assert.ErrorIs(t, err, types.ErrThirdPartyLookup)
		assert.Nil(t, trip)
		assert.Empty(t, errs)
		assert.Len(t, loc.acCalls, 1)
	})

	t.Run("Reverse lookup failure propagates", func(t *testing.T) {
		loc := &fakeLocator{
			reverse: func(float64, float64) (geo.Address, error) { return geo.Address{}, errors.New("boom") },
		}
		v := NewItineraryValidator(loc, testLogger)

		_, _, err := v.Validate(ctx, decode(t, tripJSON(t, 2, nil)), italy)
		assert.Error(t, err)
	})
}

func TestValidate_TypedTrip(t *testing.T) {
	t.Run("Numeric coordinates keep their text", func(t *testing.T) {
		raw := tripJSON(t, 1, func(_ int, day map[string]any) {
			day["morningActivity"] = []any{map[string]any{
				"contentName": "Uffizi Gallery", "contentType": "museum",
				"contentLatitude": 43.76780, "contentLongitude": 11.25530,
			}}
		})
		// Raw JSON keeps the literal; rewrite it to carry trailing zeros.
		raw = strings.Replace(raw, "43.7678", "43.76780", 1)

		v := NewItineraryValidator(locatorFor("Italy"), testLogger)
		trip, errs, err := v.Validate(context.Background(), decode(t, raw), Target{Days: 1, CountryCode: "IT", CountryName: "Italy"})
		require.NoError(t, err)
		require.Empty(t, errs)
		m := trip.TripItinerary[0].MorningActivity[0]
		assert.Equal(t, "43.76780", m.Latitude)
		assert.Equal(t, "11.2553", m.Longitude)
		assert.Equal(t, 1, trip.TripItinerary[0].Day)
	})

	t.Run("Items that are not objects are a shape error", func(t *testing.T) {
		raw := tripJSON(t, 1, func(_ int, day map[string]any) {
			day["eveningActivity"] = []any{"dinner somewhere"}
		})
		loc := locatorFor("Italy")
		v := NewItineraryValidator(loc, testLogger)

		trip, errs, err := v.Validate(context.Background(), decode(t, raw), Target{Days: 1, CountryCode: "IT", CountryName: "Italy"})
		require.NoError(t, err)
		assert.Nil(t, trip)
		require.Len(t, errs, 1)
		assert.Equal(t, types.CategoryWrongShape, errs[0].Category)
		assert.Empty(t, loc.acCalls)
	})
}
