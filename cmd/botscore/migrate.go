package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clippintel/botscore/migrations"
	"github.com/clippintel/botscore/pkg/postgres"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	source := func() (string, postgres.Migrations, error) {
		if databaseURL == "" {
			return "", postgres.Migrations{}, errors.New("--database-url or DATABASE_URL is required")
		}
		return databaseURL, postgres.Migrations{FS: migrations.FS}, nil
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the analysis database schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, src, err := source()
				if err != nil {
					return err
				}
				return postgres.MigrateUp(dsn, src)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, src, err := source()
				if err != nil {
					return err
				}
				return postgres.MigrateDown(dsn, src)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, src, err := source()
				if err != nil {
					return err
				}
				version, dirty, ok, err := postgres.MigrationVersion(dsn, src)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}
