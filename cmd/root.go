// Package cmd implements the truewage CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/derickschaefer/truewage/internal/app"
	"github.com/derickschaefer/truewage/internal/config"
	"github.com/derickschaefer/truewage/internal/render"
	"github.com/spf13/cobra"
)

// EnvLogLevel selects the log level when --debug is not given.
const EnvLogLevel = "TRUEWAGE_LOG_LEVEL"

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	Format string
	Out    string
	Locale string
	Quiet  bool
	Debug  bool
}

// rootCmd is the base command. Running `truewage` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "truewage",
	Short: "truewage: what your job pays per hour of your life",
	Long: `truewage estimates your true hourly wage: annual pay divided by every hour
the job actually costs you, including unpaid overtime, unpaid breaks,
commuting and prep time.

Quick start:
  truewage calc --salary 80000 --commute-mins 30      # one-shot calculation
  truewage calc --role manager --salary 95000 --chart # role preset plus chart
  truewage tui                                        # interactive calculator
  truewage presets                                    # list role presets`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(globalFlags.Debug)
	},
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	cfg.Quiet = globalFlags.Quiet
	cfg.Debug = globalFlags.Debug

	if globalFlags.Format != "" {
		cfg.Format = globalFlags.Format
	}
	if globalFlags.Locale != "" {
		cfg.Locale = globalFlags.Locale
	}

	return app.New(cfg)
}

// setupLogging installs a text slog handler on stderr. --debug forces debug
// level; otherwise TRUEWAGE_LOG_LEVEL decides, defaulting to warn.
func setupLogging(debug bool) {
	level := parseLevel(os.Getenv(EnvLogLevel))
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|json|csv|tsv|md|text (default: table)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Locale, "locale", "",
		"locale for number formatting, e.g. en-US, de-DE (overrides env TRUEWAGE_LOCALE)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log preset application and calculation details to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("format", completeChoices(render.Formats...))
}
