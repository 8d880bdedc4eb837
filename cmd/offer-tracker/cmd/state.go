package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/offer-tracker/internal/api/handlers"
	domain "github.com/donaldgifford/offer-tracker/pkg/types"
)

func stateCmd() *cobra.Command {
	stateRoot := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the notification record",
		Long: "The notification record lists the products already announced. While the\n" +
			"tracked product is in it, further offer ticks stay silent.",
	}

	stateRoot.AddCommand(stateShowCmd(), stateResetCmd())
	return stateRoot
}

func stateShowCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the notification record",
		Example: `  offer-tracker state show
  offer-tracker state show --remote --server http://tracker:8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var view *domain.StateView
			if remote {
				v, err := newClient().GetState(cmd.Context())
				if err != nil {
					return err
				}
				view = v
			} else {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				ids, err := a.engine.NotifiedIDs(cmd.Context())
				if err != nil {
					return err
				}
				t := a.engine.Target()
				view = &domain.StateView{
					ProductID: t.ProductID,
					Sizes:     t.SizeLabels(),
					Notified:  ids,
					Current:   slices.Contains(ids, t.ProductID),
					LastTick:  handlers.Report(t, a.engine.LastResult()),
				}
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), view)
			}
			return printStateView(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "read the record from a running server")
	return cmd
}

func stateResetCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the notification record",
		Long: "reset empties the record so the next qualifying tick announces the offer\n" +
			"again. Use --remote while the server is running so the reset waits for\n" +
			"any tick in progress.",
		Example: `  offer-tracker state reset
  offer-tracker state reset --remote`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote {
				if err := newClient().ResetState(cmd.Context()); err != nil {
					return err
				}
			} else {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				if err := a.engine.ResetState(cmd.Context()); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Notification record cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "reset the record on a running server")
	return cmd
}
