package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/state"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Version is set at build time.
var Version = "dev"

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// skipStore marks commands that run without opening the task store.
const skipStore = "skip-store"

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	out, errOut io.Writer

	configPath string
	dbPath     string
	backend    string
	logLevel   string
	theme      string

	cfg    *config.Config
	logger *log.Logger
	print  *ui.Printer
	repo   store.Repository
	ctrl   *state.Controller
}

// Run executes tada with args and returns the process exit code.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	a := &app{out: out, errOut: errOut, print: ui.NewPrinter(out, errOut, ui.ThemeByName(""))}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return ExitOK
	}

	a.print.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// exactArgs and minArgs replace cobra's validators so arity mistakes
// exit with ExitUsage.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny local task list",
		Long: `tada keeps short text tasks in a local database.

Run without a subcommand to open the interactive screen.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.tada/config.yaml then ./.tada/config.yaml)")
	pf.StringVar(&a.dbPath, "db", "", "path of the task database or data file")
	pf.StringVar(&a.backend, "backend", "", "store backend: sqlite, json or memory")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.theme, "theme", "", "output theme: classic, neon or mono")

	root.AddCommand(
		a.addCmd(),
		a.lsCmd(),
		a.doneCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.clearCmd(),
		a.tuiCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root
}

// setup loads config, then opens the store and loads the task list.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return usagef("%v", err)
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Store.Backend = a.backend
	}
	if flags.Changed("db") {
		cfg.Store.Path = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = a.theme
	}
	if err := cfg.Validate(); err != nil {
		return usagef("%v", err)
	}
	a.cfg = cfg
	a.print.Theme = ui.ThemeByName(cfg.UI.Theme)

	a.logger, err = logging.New(a.errOut, cfg.Log.Level)
	if err != nil {
		return usagef("%v", err)
	}

	if cmd.Annotations[skipStore] != "" {
		return nil
	}

	a.repo, err = openRepo(cfg)
	if err != nil {
		return err
	}
	a.logger.Debug("store opened", "backend", cfg.Store.Backend, "path", cfg.Store.Path)

	opts := []state.Option{state.WithLogger(a.logger)}
	if cfg.Controller.Serialize {
		opts = append(opts, state.WithSerializedOps())
	}
	a.ctrl = state.New(a.repo, opts...)
	return <-a.ctrl.Init(cmd.Context())
}

func (a *app) close() {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil && a.logger != nil {
		a.logger.Warn("close store", "err", err)
	}
}

func openRepo(cfg *config.Config) (store.Repository, error) {
	if cfg.Store.Backend == config.BackendMemory {
		return memstore.New(), nil
	}
	path, err := cfg.StorePath()
	if err != nil {
		return nil, store.Wrap("open", err)
	}
	if cfg.Store.Backend == config.BackendJSON {
		s, err := jsonstore.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := sqlitestore.Open(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
