package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voyageRN-project/voyage/internal/api/geo"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// fakeLocator answers lookups from functions and records every call.
type fakeLocator struct {
	mu           sync.Mutex
	autocomplete func(name string) ([]geo.Prediction, error)
	reverse      func(lat, lon float64) (geo.Address, error)
	acCalls      []string
	revCalls     []string
}

func (f *fakeLocator) Autocomplete(_ context.Context, input string) ([]geo.Prediction, error) {
	f.mu.Lock()
	f.acCalls = append(f.acCalls, input)
	f.mu.Unlock()
	if f.autocomplete == nil {
		return nil, nil
	}
	return f.autocomplete(input)
}

func (f *fakeLocator) Reverse(_ context.Context, lat, lon float64) (geo.Address, error) {
	f.mu.Lock()
	f.revCalls = append(f.revCalls, fmt.Sprintf("%g,%g", lat, lon))
	f.mu.Unlock()
	if f.reverse == nil {
		return geo.Address{}, nil
	}
	return f.reverse(lat, lon)
}

// locatorFor accepts every name with a prediction mentioning the country.
func locatorFor(country string) *fakeLocator {
	return &fakeLocator{
		autocomplete: func(name string) ([]geo.Prediction, error) {
			return []geo.Prediction{{Description: name + ", " + country}}, nil
		},
	}
}

// scriptedInvoker replays responses in order, repeating the last one.
type scriptedInvoker struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (s *scriptedInvoker) Invoke(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	i := len(s.prompts) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func items(prefix, name, lat, lon string) []any {
	return []any{map[string]any{
		prefix + "Name":        name,
		prefix + "Type":        "sight",
		prefix + "Description": "A place worth a visit",
		prefix + "Latitude":    lat,
		prefix + "Longitude":   lon,
	}}
}

// tripJSON renders a complete itinerary where day i has five uniquely named items.
func tripJSON(t testing.TB, days int, mutate func(i int, day map[string]any)) string {
	t.Helper()
	list := make([]any, 0, days)
	for i := 1; i <= days; i++ {
		day := map[string]any{
			"day":                          i,
			"morningActivity":              items("content", fmt.Sprintf("Morning Site %d", i), "43.7731", "11.2560"),
			"afternoonActivity":            items("content", fmt.Sprintf("Afternoon Site %d", i), "43.7687", "11.2569"),
			"eveningActivity":              items("content", fmt.Sprintf("Evening Site %d", i), "43.7696", "11.2558"),
			"restaurantsRecommendations":   items("restaurant", fmt.Sprintf("Restaurant %d", i), "43.7710", "11.2480"),
			"accommodationRecommendations": items("accommodation", fmt.Sprintf("Hotel %d", i), "43.7720", "11.2500"),
		}
		if mutate != nil {
			mutate(i, day)
		}
		list = append(list, day)
	}
	raw, err := json.Marshal(map[string]any{"tripItinerary": list})
	require.NoError(t, err)
	return string(raw)
}

func decode(t testing.TB, raw string) Document {
	t.Helper()
	doc, err := DecodeResponse(raw)
	require.NoError(t, err)
	return doc
}

func countContaining(prompts []string, needle string) int {
	n := 0
	for _, p := range prompts {
		if strings.Contains(p, needle) {
			n++
		}
	}
	return n
}
