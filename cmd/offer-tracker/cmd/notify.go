package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/offer-tracker/internal/notify"
)

const testMessage = "✅ <b>offer-tracker</b> test message. Notifications are working."

func testNotifyCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test message through the configured notifier",
		Example: `  offer-tracker test-notify
  offer-tracker test-notify --text "hello from the server"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			n := newNotifier(cfg, log)
			if err := n.SendText(cmd.Context(), text); err != nil {
				if errors.Is(err, notify.ErrNotConfigured) {
					return fmt.Errorf("no notifier configured: set TELEGRAM_TOKEN and TELEGRAM_CHAT_ID: %w", err)
				}
				return fmt.Errorf("sending test message: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Test message sent.")
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", testMessage, "message text (HTML)")
	return cmd
}
