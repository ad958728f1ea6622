package terminal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/timeline-report/pkg/runtime/terminal/commands"
	"github.com/de-tools/timeline-report/pkg/runtime/terminal/export"
	"github.com/de-tools/timeline-report/pkg/runtime/viewer"
	"github.com/de-tools/timeline-report/pkg/services/command"
	"github.com/de-tools/timeline-report/pkg/services/config"
	"github.com/de-tools/timeline-report/pkg/services/registry"
	"github.com/de-tools/timeline-report/pkg/services/reports"
	"github.com/de-tools/timeline-report/pkg/store/duckdb"
	"github.com/de-tools/timeline-report/pkg/store/duckdb/report"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts     Options
	reporter *export.Reporter
	rootCmd  *cobra.Command

	cfgPath  string
	logLevel string

	cfg     *config.Config
	db      *sql.DB
	plain   reports.Service
	history reports.Service
}

// Options contain configuration for the CLI
type Options struct {
	Output    io.Writer
	ErrOutput io.Writer
	Input     io.Reader
	Args      []string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	cli := &CLI{
		opts:     opts,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	err := cli.rootCmd.ExecuteContext(ctx)
	if cli.db != nil {
		err = errors.Join(err, cli.db.Close())
		cli.db = nil
	}
	return err
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "timeline-report",
		Short:             "Timeline compute report generator",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}

	cmd.SetOut(cli.opts.Output)
	cmd.SetErr(cli.opts.ErrOutput)
	cmd.SetIn(cli.opts.Input)
	if cli.opts.Args != nil {
		cmd.SetArgs(cli.opts.Args)
	}

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (overrides log_level)")

	cmd.AddCommand(commands.NewRenderCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewHistoryCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewShowCmd(cli))
	cmd.AddCommand(commands.NewCommandsCmd(cli, cli.reporter))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.cfgPath)
	if err != nil {
		return err
	}
	if cli.logLevel != "" {
		cfg.LogLevel = cli.logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	cli.cfg = cfg

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.opts.ErrOutput, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

func (cli *CLI) Config() *config.Config {
	return cli.cfg
}

func (cli *CLI) Reports(ctx context.Context, withHistory bool) (reports.Service, error) {
	if !withHistory {
		if cli.plain == nil {
			svc, err := reports.NewService(nil)
			if err != nil {
				return nil, err
			}
			cli.plain = svc
		}
		return cli.plain, nil
	}

	if cli.history != nil {
		return cli.history, nil
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cli.cfg.History.DBPath})
	if err != nil {
		return nil, err
	}
	store, err := report.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	svc, err := reports.NewService(store)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("db_path", cli.cfg.History.DBPath).Msg("report history opened")
	cli.db = db
	cli.history = svc
	return svc, nil
}

func (cli *CLI) Commands() (registry.Registry, error) {
	if cli.cfg.CommandsFile != "" {
		return registry.NewRegistry(cli.cfg.CommandsFile)
	}
	return registry.NewDefaultRegistry()
}

func (cli *CLI) Viewer() command.Viewer {
	return viewer.NewBrowser(cli.opts.ErrOutput, cli.opts.ErrOutput)
}

func (cli *CLI) Input() io.Reader {
	return cli.opts.Input
}

func (cli *CLI) Messages() io.Writer {
	return cli.opts.ErrOutput
}
