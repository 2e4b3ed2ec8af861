package cmd

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath        string
	logLevel          string
	symbolsAsWeakKeys bool
	stringCacheSize   int
	rpn               bool
	exitCode          *int
}

// Execute is the entry point to running the CLI. It returns the process exit
// code.
func Execute(ctx context.Context, version string) int {
	exitCode := ExitOK
	rootCmd := NewRootCommand(ctx, version, &exitCode)
	if err := rootCmd.Execute(); err != nil {
		return ExitUsage
	}
	return exitCode
}

// NewRootCommand builds the esvalue command tree. The exit code of the last
// run is stored in exitCode.
func NewRootCommand(ctx context.Context, version string, exitCode *int) *cobra.Command {
	opts := &rootOptions{exitCode: exitCode}
	var rootCmd = &cobra.Command{
		Use:          "esvalue [script]",
		Short:        "Evaluate value-model probe scripts, or start a REPL when no script is given.",
		Args:         cobra.MaximumNArgs(1),
		RunE:         newRunAction(ctx, opts),
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.symbolsAsWeakKeys, "symbols-as-weak-keys", false, "allow non-registered symbols as weak keys")
	rootCmd.PersistentFlags().IntVar(&opts.stringCacheSize, "string-cache-size", 0, "short-string cache capacity")

	astCmd := &cobra.Command{
		Use:   "ast [script]",
		Short: "Print the parsed statements of a script",
		Args:  cobra.ExactArgs(1),
		RunE:  newAstAction(opts),
	}
	astCmd.Flags().BoolVar(&opts.rpn, "rpn", false, "print expression statements in reverse polish notation")
	rootCmd.AddCommand(astCmd)

	return rootCmd
}

func newRunAction(ctx context.Context, opts *rootOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.config(cmd)
		if err != nil {
			return err
		}

		log.Debugf("Running with config %+v", cfg)
		app := NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		*opts.exitCode = app.Main(ctx, args)
		return nil
	}
}

func newAstAction(opts *rootOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.config(cmd)
		if err != nil {
			return err
		}

		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		app := NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		*opts.exitCode = app.PrintAst(string(source), opts.rpn)
		return nil
	}
}

// config loads the config file and lets explicitly set flags override it.
func (opts *rootOptions) config(cmd *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("symbols-as-weak-keys") {
		cfg.SymbolsAsWeakKeys = opts.symbolsAsWeakKeys
	}
	if flags.Changed("string-cache-size") {
		cfg.StringCacheSize = opts.stringCacheSize
	}

	return cfg, cfg.Apply()
}
