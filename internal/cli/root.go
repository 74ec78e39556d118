// Package cli implements the gridview command line.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-theft-auto/grid/config"
	"github.com/go-theft-auto/grid/ingest"
)

// ErrNotTerminal is returned by view when stdin or stdout is not a TTY.
var ErrNotTerminal = errors.New("view needs an interactive terminal")

// app is the state shared by the subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the gridview root command.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "gridview",
		Short:         "Browse large CSV files in a virtualized grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "rotating log file (overrides config)")
	cmd.AddCommand(newViewCmd(a), newSnapshotCmd(a), newDesktopCmd(a))

	return cmd
}

// setup loads the config and builds the logger. The terminal viewer owns
// the screen, so without a log file it logs nowhere.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Logging.File = a.logFile
	}
	a.cfg = cfg

	log, closer, err := newLogger(cfg.Logging, cmd.ErrOrStderr(), cmd.Name() == "view")
	if err != nil {
		return err
	}
	a.log, a.closer = log, closer
	a.log.Debug().Str("command", cmd.Name()).Str("config", a.configPath).Msg("command started")
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *app) readTable(path string) (ingest.Table, error) {
	opts := ingest.Options{MaxRows: a.cfg.Ingest.MaxRows}
	if d := []rune(a.cfg.Ingest.Delimiter); len(d) == 1 {
		opts.Comma = d[0]
	}
	t, err := ingest.ReadFile(path, opts)
	if err != nil {
		return t, err
	}
	a.log.Info().
		Str("file", path).
		Int("columns", len(t.Columns)).
		Int("rows", t.Rows.Len()).
		Msg("csv loaded")
	return t, nil
}
