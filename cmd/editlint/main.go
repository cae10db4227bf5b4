package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/statcode-ai/editlint/internal/config"
	"github.com/statcode-ai/editlint/internal/lint"
	"github.com/statcode-ai/editlint/internal/logger"
)

type options struct {
	root      string
	config    string
	timeout   time.Duration
	overrides []string
	logLevel  string
	logFile   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "editlint <file>...",
		Short: "Report syntax errors in edited source files",
		Long: `editlint checks each file for syntax errors and prints a compact,
structure-aware excerpt of the offending lines. Findings are advisory: the
exit status is zero whether or not problems were found. Only unreadable files
and unrunnable lint commands fail the run.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "project root for relative paths and command execution (default: working directory)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path (default: editlint.toml in the root)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "external lint command timeout (default 30s)")
	cmd.Flags().StringArrayVar(&opts.overrides, "lint", nil, "per-language lint command, lang=command (repeatable)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "none", "log level: debug, info, warn, error, none")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "log file path")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	root := opts.root
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	if err := logger.Init(logger.ParseLevel(opts.logLevel), opts.logFile); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Global().Close()

	cfg, err := config.Load(opts.config, root)
	if err != nil {
		return err
	}

	linter := lint.New(root)
	if cfg.TimeoutSeconds > 0 {
		linter.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}
	if opts.timeout > 0 {
		linter.SetTimeout(opts.timeout)
	}
	for lang, command := range cfg.Commands {
		linter.Register(lang, lint.CommandHandler(command))
	}
	for _, override := range opts.overrides {
		lang, command, ok := strings.Cut(override, "=")
		if !ok || lang == "" || command == "" {
			return fmt.Errorf("invalid --lint value %q, expected lang=command", override)
		}
		linter.Register(lang, lint.CommandHandler(command))
	}

	// Arguments are valid from here on; failures are runtime faults, not
	// usage errors.
	cmd.SilenceUsage = true

	for _, fname := range args {
		report, err := linter.Lint(cmd.Context(), fname)
		if err != nil {
			return err
		}
		if report != "" {
			fmt.Fprintln(cmd.OutOrStdout(), report)
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
