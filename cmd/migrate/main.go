package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"usersapi/config"
	"usersapi/internal/db"
)

// opener connects to the target database and names its goose dialect.
type opener func(ctx context.Context) (*gorm.DB, string, error)

func openFromConfig(context.Context) (*gorm.DB, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	gdb, err := db.NewDB(cfg.DSN)
	if err != nil {
		return nil, "", err
	}
	return gdb, db.DialectPostgres, nil
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the users database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// withDB opens the database for the duration of one subcommand.
	withDB := func(fn func(ctx context.Context, cmd *cobra.Command, gdb *gorm.DB, dialect string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			gdb, dialect, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close(gdb)
			return fn(ctx, cmd, gdb, dialect)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, cmd *cobra.Command, gdb *gorm.DB, dialect string) error {
				if err := db.Migrate(ctx, gdb, dialect); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, cmd *cobra.Command, gdb *gorm.DB, dialect string) error {
				if err := db.Rollback(ctx, gdb, dialect); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "rollback completed")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, _ *cobra.Command, gdb *gorm.DB, dialect string) error {
				return db.Status(ctx, gdb, dialect)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, cmd *cobra.Command, gdb *gorm.DB, dialect string) error {
				v, err := db.Version(ctx, gdb, dialect)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
				return nil
			}),
		},
	)
	return root
}

func main() {
	if err := newRootCmd(openFromConfig).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
