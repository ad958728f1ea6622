package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/timeline-report/pkg/server"
	"github.com/de-tools/timeline-report/pkg/services/config"
	"github.com/de-tools/timeline-report/pkg/services/registry"
	"github.com/de-tools/timeline-report/pkg/services/reports"
	"github.com/de-tools/timeline-report/pkg/store/duckdb"
	"github.com/de-tools/timeline-report/pkg/store/duckdb/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the timeline report preview server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (defaults and TIMELINE_REPORT_* variables apply)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	var store report.Store
	if cfg.History.Enabled {
		db, err := duckdb.NewDB(duckdb.Settings{
			DbPath: cfg.History.DBPath,
		})
		if err != nil {
			return fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		defer db.Close()

		store, err = report.NewStore(db)
		if err != nil {
			return fmt.Errorf("failed to create report store: %w", err)
		}
		zerolog.Ctx(ctx).Info().Msgf("report history stored in `%s`", cfg.History.DBPath)
	}

	reportService, err := reports.NewService(store)
	if err != nil {
		return fmt.Errorf("failed to create report service: %w", err)
	}

	var commands registry.Registry
	if cfg.CommandsFile != "" {
		commands, err = registry.NewRegistry(cfg.CommandsFile)
	} else {
		commands, err = registry.NewDefaultRegistry()
	}
	if err != nil {
		return fmt.Errorf("failed to load command manifest: %w", err)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Dependencies: server.Dependencies{
			Reports:  reportService,
			Commands: commands,
			Logger:   logger,
		},
	})

	return api.Start()
}
