package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/offer-tracker/internal/state"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run PostgreSQL state migrations",
		Long: "migrate applies pending schema migrations when state.driver is postgres.\n" +
			"serve also migrates on startup; this command lets you do it ahead of a deploy.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			if cfg.State.Driver != state.DriverPostgres {
				return errors.New("migrate requires state.driver: postgres")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			s, err := state.NewPostgresStore(ctx, cfg.State.Database.DSN())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer s.Close()

			log.Info("running migrations", "host", cfg.State.Database.Host, "database", cfg.State.Database.Name)

			if err := s.Migrate(ctx); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			log.Info("migrations complete")
			return nil
		},
	}
}
