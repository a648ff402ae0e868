package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "f1arc",
		Short:         "f1arc: archive OpenF1 session data into append-only CSV files",
		Long:          "f1arc discovers Formula 1 seasons on the OpenF1 API, fetches session, meeting, and per-session telemetry tables, and accumulates them into one CSV file per dataset.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newSeasonsCmd(app),
	)

	return rootCmd
}
