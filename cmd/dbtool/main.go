package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"relief-dispatch-service/internal/adapters/repositories"
	"relief-dispatch-service/internal/config"
	"relief-dispatch-service/internal/platform/db"
	"relief-dispatch-service/internal/platform/logging"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "dbtool:", err)
		os.Exit(1)
	}
}

type options struct {
	cfgPath     string
	sqlitePath  string
	postgresURL string
	log         zerolog.Logger
	storage     config.StorageConfig
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Prepare relief dispatch databases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.storage = cfg.Storage
			if opts.sqlitePath == "" {
				opts.sqlitePath = cfg.Storage.SQLitePath
			}
			if opts.postgresURL == "" {
				opts.postgresURL = cfg.Storage.PostgresURL
			}
			opts.log = logging.NewWithWriter(cfg.Log, "dbtool", logOut)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", config.Get("CONFIG_PATH", ""), "configuration file (yaml or json)")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite", "", "SQLite database file (defaults to storage.sqlite_path)")
	root.PersistentFlags().StringVar(&opts.postgresURL, "postgres", config.Get("DATABASE_URL", ""), "Postgres URL for the plan store")

	root.AddCommand(newInitCmd(opts), newSeedCmd(opts))
	return root
}

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the SQLite schema, and the Postgres plan table when a URL is set",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts.log.Info().Str("path", opts.sqlitePath).Msg("initializing sqlite schema")
			conn, err := db.OpenSQLite(opts.sqlitePath)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := repositories.InitSchema(conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			if strings.TrimSpace(opts.postgresURL) == "" {
				opts.log.Info().Msg("schema ready")
				return nil
			}

			opts.log.Info().Msg("initializing postgres plan schema")
			pg, err := db.Open(opts.postgresURL)
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := repositories.InitPostgresSchema(pg); err != nil {
				return fmt.Errorf("postgres schema initialization failed: %w", err)
			}
			opts.log.Info().Msg("schema ready")
			return nil
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "seed <scenario.json>...",
		Short: "Load scenario files into the SQLite scenario store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if name != "" && len(args) > 1 {
				return fmt.Errorf("--name applies to a single scenario file")
			}

			conn, err := db.OpenSQLite(opts.sqlitePath)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := repositories.InitSchema(conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			for _, path := range args {
				scenario := name
				if scenario == "" {
					scenario = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}
				if err := repositories.SeedFromJSON(conn, scenario, path); err != nil {
					return fmt.Errorf("seeding %s failed: %w", path, err)
				}
				opts.log.Info().Str("scenario", scenario).Str("file", path).Msg("seeded")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "scenario name (defaults to the file name)")
	return cmd
}
