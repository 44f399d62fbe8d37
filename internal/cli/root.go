// Package cli wires the command-line front-end to the store.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todochat/internal/config"
	"github.com/idilsaglam/todochat/internal/ui"
)

const appName = "todochat"

// Set at build time with -ldflags "-X".
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

// usageError marks errors that should exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type rootOptions struct {
	configPath string
	dataDir    string
	logLevel   string
	theme      string
	noColor    bool

	stderr io.Writer

	cfg *config.Config
	log *slog.Logger
}

// Execute runs the command line and returns an exit code
// (0 ok, 1 error, 2 usage).
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(stdout, stderr)
	if len(args) == 0 {
		_ = cmd.Help()
		return 2
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", appName)
		return 2
	}
	return 1
}

// NewRootCmd builds the command tree.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &rootOptions{stderr: stderr}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "A todo list and a chat room that survive restarts",
		Long: `todochat keeps a todo list and a single chat room in a local state file.

Every change is written to disk before the command returns, and the next
invocation (or the interactive UI) picks up where the last one left off.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.resolve()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "Config file path (YAML)")
	f.StringVar(&o.dataDir, "data-dir", "", "Directory holding the state file")
	f.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&o.theme, "theme", "", "Output theme (classic, neon, mono)")
	f.BoolVar(&o.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newTodoCmd(o),
		newChatCmd(o),
		newTUICmd(o),
		newConfigCmd(o),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}

// resolve loads config, applies flags, and sets up logging and theme.
func (o *rootOptions) resolve() error {
	boot := slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.NewLoader(boot).Load(o.configPath)
	if err != nil {
		return err
	}
	cfg.Merge(&config.Config{
		Data: config.DataConfig{Dir: o.dataDir},
		UI:   config.UIConfig{Theme: o.theme},
		Log:  config.LogConfig{Level: o.logLevel},
	})
	if err := cfg.Validate(); err != nil {
		return usagef("invalid configuration: %v", err)
	}

	o.cfg = cfg
	o.log = slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	ui.SetTheme(cfg.UI.Theme)
	if o.noColor {
		ui.SetColorForcing(false, true)
	}
	return nil
}

// withApp opens the app around fn.
func (o *rootOptions) withApp(fn func(a *App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(o.cfg, o.log)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close data dir: %w", cerr)
			}
		}()
		return fn(a, cmd, args)
	}
}

// exactArgs is cobra.ExactArgs with a usage-classified error.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}

func maxArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usagef("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}
