package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show readiness and state of a running server",
		Example: `  offer-tracker status
  OT_SERVER=http://tracker:8080 offer-tracker status --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()

			ready, err := c.Ready(cmd.Context())
			if err != nil {
				return err
			}
			view, err := c.GetState(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, map[string]any{
					"server": c.BaseURL(),
					"ready":  ready,
					"state":  view,
				})
			}

			fmt.Fprintf(out, "Server:\t%s (%s)\n\n", c.BaseURL(), ready)
			return printStateView(out, view)
		},
	}
}

func triggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Ask a running server to check the catalog now",
		Example: `  offer-tracker trigger
  offer-tracker trigger --server http://tracker:8080 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := newClient().Check(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), report)
			}
			return printTickReport(cmd.OutOrStdout(), report)
		},
	}
}
