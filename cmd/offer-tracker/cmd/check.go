package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/offer-tracker/internal/api/handlers"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one catalog check and exit",
		Long: "check runs a single tick against the configured store and notifier,\n" +
			"exactly as the scheduler would, then prints the result.",
		Example: `  offer-tracker check
  offer-tracker check --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, tickErr := a.engine.RunTick(cmd.Context())
			report := handlers.Report(a.engine.Target(), res)

			out := cmd.OutOrStdout()
			if jsonOutput() {
				err = outputJSON(out, report)
			} else {
				err = printTickReport(out, report)
			}
			if tickErr != nil {
				return tickErr
			}
			return err
		},
	}
}
