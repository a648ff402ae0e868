package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/openf1-tools/f1arc/internal/adapters/manifest"
	"github.com/openf1-tools/f1arc/internal/adapters/openf1"
	"github.com/openf1-tools/f1arc/internal/adapters/render/report"
	csvsink "github.com/openf1-tools/f1arc/internal/adapters/sink/csv"
	"github.com/openf1-tools/f1arc/internal/application"
	"github.com/openf1-tools/f1arc/internal/config"
	"github.com/openf1-tools/f1arc/internal/domain"
	"github.com/openf1-tools/f1arc/internal/ports"
)

func newRunCmd(app *app) *cobra.Command {
	var (
		baseURL      string
		scope        string
		outDir       string
		startYear    int
		endYear      int
		laps         bool
		noMeetings   bool
		keepExisting bool
		asJSON       bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Discover seasons and archive all in-scope session data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.cfg
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if cmd.Flags().Changed("scope") {
				parsed, err := domain.ParseScope(scope)
				if err != nil {
					return err
				}
				cfg.Scope = parsed
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("start-year") {
				cfg.StartYear = startYear
			}
			if cmd.Flags().Changed("end-year") {
				cfg.EndYear = endYear
			}
			if cmd.Flags().Changed("laps") {
				cfg.DownloadLaps = laps
			}
			if cmd.Flags().Changed("no-meetings") {
				cfg.IncludeMeetings = !noMeetings
			}
			if cmd.Flags().Changed("keep-existing") {
				cfg.Overwrite = !keepExisting
			}

			return runArchive(cmd, cfg, asJSON, verbose)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "OpenF1 API base URL")
	cmd.Flags().StringVar(&scope, "scope", "", "Session scope: ALL, RACE, or RACE_SPRINT")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory for the CSV files")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "First season to probe")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "Last season to probe (default: current year)")
	cmd.Flags().BoolVar(&laps, "laps", false, "Also download the laps dataset")
	cmd.Flags().BoolVar(&noMeetings, "no-meetings", false, "Skip the meetings dataset")
	cmd.Flags().BoolVar(&keepExisting, "keep-existing", false, "Append to existing output files instead of overwriting")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run summary as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log individual fetch attempts")

	return cmd
}

func runArchive(cmd *cobra.Command, cfg config.Config, asJSON, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	fetcher := openf1.NewClient(openf1.Config{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		Retries:           cfg.Retries,
		Backoff:           cfg.Backoff,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})

	sinks := make(map[string]ports.TableSink)
	for _, dataset := range application.Datasets(cfg.IncludeMeetings, cfg.DownloadLaps) {
		target, err := csvsink.NewTarget(filepath.Join(cfg.OutDir, dataset+"_all.csv"), cfg.Overwrite)
		if err != nil {
			return err
		}
		sinks[dataset] = target
	}

	pipeline := application.NewPipeline(fetcher, sinks, application.Options{
		Scope:           cfg.Scope,
		IncludeMeetings: cfg.IncludeMeetings,
		DownloadLaps:    cfg.DownloadLaps,
		StartYear:       cfg.StartYear,
		EndYear:         cfg.EndYear,
	}, ports.SystemClock{}, logger)

	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := manifest.Write(cfg.OutDir, manifest.FromSummary(summary, time.Now())); err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	rendered := report.Render(summary, report.RenderOptions{OutDir: cfg.OutDir})
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
