package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openf1-tools/f1arc/internal/adapters/openf1"
	"github.com/openf1-tools/f1arc/internal/application"
	"github.com/openf1-tools/f1arc/internal/ports"
)

func newSeasonsCmd(app *app) *cobra.Command {
	var (
		baseURL   string
		startYear int
		endYear   int
	)

	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Probe which seasons have session data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.cfg
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if cmd.Flags().Changed("start-year") {
				cfg.StartYear = startYear
			}
			if cmd.Flags().Changed("end-year") {
				cfg.EndYear = endYear
			}

			fetcher := openf1.NewClient(openf1.Config{
				BaseURL:           cfg.BaseURL,
				Timeout:           cfg.Timeout,
				Retries:           cfg.Retries,
				Backoff:           cfg.Backoff,
				RequestsPerSecond: cfg.RequestsPerSecond,
			})
			pipeline := application.NewPipeline(fetcher, nil, application.Options{}, ports.SystemClock{}, nil)

			probe := func(ctx context.Context, onProbe func(application.SeasonProgress)) []int {
				return pipeline.DiscoverSeasons(ctx, cfg.StartYear, cfg.EndYear, onProbe)
			}
			years, err := runSeasonProbe(cmd.Context(), cmd.ErrOrStderr(), probe)
			if err != nil {
				return err
			}

			if len(years) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No seasons with session data detected.")
				return err
			}
			for _, year := range years {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), year); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "OpenF1 API base URL")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "First season to probe")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "Last season to probe (default: current year)")

	return cmd
}
