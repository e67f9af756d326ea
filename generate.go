package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/voyageRN-project/voyage/config"
	generativeAI "github.com/voyageRN-project/voyage/internal/api/generative_ai"
	"github.com/voyageRN-project/voyage/internal/api/geo"
	"github.com/voyageRN-project/voyage/internal/api/trip"
	"github.com/voyageRN-project/voyage/internal/container"
	"github.com/voyageRN-project/voyage/internal/types"
)

// newGenerateCmd runs the itinerary loop once from the command line, without
// sponsor recommendations or storage, and prints the validated trip.
func newGenerateCmd(cfg *config.Config, logger **slog.Logger) *cobra.Command {
	var req types.TripRequest
	var interests string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one itinerary and print it as JSON",
		Example: `  voyage generate --budget Moderate --season autumn --participants 2 \
    --duration "3 days" --country-code IT --interest-points "wineries,day trips"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := *logger
			req.InterestPoints = types.SplitCommaList(interests)

			days, err := trip.ValidateRequest(req)
			if err != nil {
				return err
			}
			countryName, err := geo.CountryName(req.CountryCode)
			if err != nil {
				return err
			}

			invoker, err := generativeAI.NewInvoker(ctx, cfg, l)
			if err != nil {
				return err
			}
			orchestrator := container.NewOrchestrator(cfg, l, invoker, container.NewLocator(cfg, l))

			result, err := orchestrator.Run(ctx, trip.Plan{
				Request:     req,
				CountryName: countryName,
				Days:        days,
			})
			if err != nil {
				return err
			}
			l.InfoContext(ctx, "Itinerary generated", slog.Int("attempts", result.Attempts))

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Trip)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Budget, "budget", "", "budget level, e.g. Moderate")
	f.StringVar(&req.Season, "season", "", "travel season")
	f.StringVar(&req.Participants, "participants", "", "number of participants")
	f.StringVar(&req.Duration, "duration", "", `trip length, e.g. "3 days"`)
	f.StringVar(&req.CountryCode, "country-code", "", "ISO 3166-1 alpha-2 destination")
	f.StringVar(&interests, "interest-points", "", "comma separated interests")
	f.StringVar(&req.City, "city", "", "optional city")
	f.StringVar(&req.Area, "area", "", "optional area")
	f.StringVar(&req.AccommodationType, "accommodation-type", "", "optional accommodation type")
	f.StringVar(&req.TransportationType, "transportation-type", "", "optional transportation type")
	return cmd
}
