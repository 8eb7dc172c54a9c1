package main

import (
	"fmt"

	"toolbox/config"
	logs "toolbox/internal/infra/log"
	"toolbox/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		logger, err := logs.New(logs.Params{Config: cfg})
		if err != nil {
			return err
		}

		db, err := postgres.Open(cfg, quietLogger(logger))
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
		}
		defer sqlDB.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "catalog schema is up to date")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
