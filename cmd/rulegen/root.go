package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rulegen/internal/config"
	"rulegen/internal/diagnostic"
	"rulegen/internal/log"
	"rulegen/internal/log/zerolog"
)

// Version is set at build time.
var Version = "development"

// app carries state shared by all subcommands once the root pre-run loaded it.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: log.NewNoopLogger()}

	rootCmd := &cobra.Command{
		Use:   "rulegen",
		Short: "Generate conversion-rule trees between data structures",
		Long: `rulegen produces conversion-rule trees: hierarchical descriptions of how
to turn a source data structure into a target one.

Rules come from mapping directives (extract), from comparing example
documents (diff, describe), or from a text-completion service (generate).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			a.cfg = cfg
			a.logger = zerolog.NewStdLogger(zerolog.NewLogger(&zerolog.Config{
				LogLevel: cfg.LogLevel,
				Out:      cmd.ErrOrStderr(),
			}))

			if cfg.File != "" {
				a.logger.Debug("using config file", log.Fields{"file": cfg.File})
			}

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./rulegen.yaml)")
	flags.String("log-level", config.DefaultLogLevel, "log level. One of trace, debug, info, warn, error")
	flags.Int("max-depth", config.DefaultMaxDepth, "maximum nesting depth for rule trees and documents")
	flags.Float64("fuzzy-threshold", 0, "similarity in (0, 1] enabling fuzzy field matching; 0 disables it")
	flags.String("target-only", "fallback", "handling of directives without a source. One of fallback, reject")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newDiffCmd(a),
		newDescribeCmd(a),
		newPromptCmd(a),
		newGenerateCmd(a),
		newFieldsCmd(a),
	)

	return rootCmd
}

// reportDiagnostics logs findings. Errors are returned by the operations
// themselves, so they are logged at warn level here.
func (a *app) reportDiagnostics(diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, d := range diags.Errors {
		a.logger.Warn(nil, d.String(), log.Fields{"code": d.Code, "severity": d.Severity.String()})
	}

	for _, d := range diags.Warnings {
		a.logger.Warn(nil, d.String(), log.Fields{"code": d.Code})
	}

	for _, d := range diags.Infos {
		a.logger.Debug(d.String(), log.Fields{"code": d.Code})
	}
}

// writeOutput writes data followed by a newline to path, or to w when path is
// empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	data = append(data, '\n')

	if path == "" {
		_, err := w.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
