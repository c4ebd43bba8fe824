// Package cmd implements the mediactl commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/mediacontroller/internal/config"
	"github.com/llehouerou/mediacontroller/internal/errmsg"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig   string
	flagLogLevel string
)

// cfg holds the loaded configuration (config files < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:               "mediactl",
	Short:             "Play local files and HTTP audio from the terminal",
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/mediactl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: trace | debug | info | warn | error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return &opError{op: errmsg.OpConfigLoad, err: err}
	}

	if flagLogLevel != "" {
		level, err := zerolog.ParseLevel(flagLogLevel)
		if err != nil {
			return errors.Wrapf(err, "invalid --log-level %q", flagLogLevel)
		}
		cfg.LogLevel = level
	}
	return nil
}

// opError tags an error with the user-facing operation that failed.
type opError struct {
	op  errmsg.Op
	err error
}

func (e *opError) Error() string { return string(e.op) + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

func userMessage(err error) string {
	var opErr *opError
	if errors.As(err, &opErr) {
		return errmsg.Format(opErr.op, opErr.err)
	}
	return "Error: " + err.Error()
}
