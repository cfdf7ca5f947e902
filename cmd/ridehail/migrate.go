package main

import (
	"fmt"

	"ride-hailing/internal/config"
	"ride-hailing/internal/store/postgres"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create tables (PostgreSQL) or indexes (MongoDB) for the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
				return nil
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger := log.New("migrate")

			repos, err := openStore(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer repos.close()

			if err := repos.migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", cfg.StoreDriver())
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the PostgreSQL schema instead of applying it")
	return cmd
}
