// Package cli implements the cyclic command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "text" | "json"
	Journal   string // journal database path, "" disables journaling
	ConfigDir string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cyclic CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cyclic",
		Short: "cyclic - a field operations interpreter",
		Long: `An interpreter for cyclical field operations: named energy-bearing
fields evolved through a closed set of symbolic operations under
conservation and entropy invariants.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(opts.Verbose)

			if err := applyConfig(cmd, opts); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaultFormat, "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Journal, "journal", "", "journal database path (enables command journaling)")
	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "config directory (default: per-user config dir)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// applyConfig fills unset flags from the config file. Explicit flags
// always win over config values.
func applyConfig(cmd *cobra.Command, opts *RootOptions) error {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("format") {
		opts.Format = cfg.GetString(cfgKeyFormat)
	}
	if !cmd.Flags().Changed("journal") && cfg.IsSet(cfgKeyJournal) {
		opts.Journal = cfg.GetString(cfgKeyJournal)
	}
	return nil
}

// configureLogging routes slog to stderr so structured logs never mix
// into command output.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
