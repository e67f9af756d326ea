package trip

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/voyageRN-project/voyage/internal/types"
)

func BenchmarkComposePrompt(b *testing.B) {
	recs := make([]types.RecommendedBusiness, 20)
	for i := range recs {
		recs[i] = types.RecommendedBusiness{ID: uuid.New(), Name: "Winery", Type: "winery", Country: "Italy"}
	}
	in := PromptInput{
		Request:         baseRequest(),
		CountryName:     "Italy",
		Days:            7,
		Recommendations: recs,
		Feedback:        []string{InvalidJSONFeedback},
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ComposePrompt(in)
	}
}

func BenchmarkDecodeResponse(b *testing.B) {
	raw := "```json\n" + tripJSON(b, 7, nil) + "\n```"

	b.ReportAllocs()
	for b.Loop() {
		if _, err := DecodeResponse(raw); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate(b *testing.B) {
	doc := decode(b, tripJSON(b, 7, nil))
	v := NewItineraryValidator(locatorFor("Italy"), testLogger)
	target := Target{Days: 7, CountryCode: "IT", CountryName: "Italy"}
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		if _, errs, err := v.Validate(ctx, doc, target); err != nil || len(errs) > 0 {
			b.Fatal(err, errs)
		}
	}
}
