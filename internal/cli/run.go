package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldworks/cyclic/internal/compiler"
	"github.com/fieldworks/cyclic/internal/interp"
	"github.com/fieldworks/cyclic/internal/journal"
	"github.com/fieldworks/cyclic/internal/scenario"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <program.yaml|program.cue>",
		Short: "Run a field program",
		Long: `Run a declarative field program: create its fields, execute its
command sequence and evaluate its assertions.

YAML programs load directly; .cue programs go through the CUE frontend.
With --journal, every creation and command is journaled for replay.

Example:
  cyclic run programs/ecosystem.yaml
  cyclic run --journal run.db --format json programs/ecosystem.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runProgram(opts *RootOptions, path string, cmd *cobra.Command) error {
	prog, err := loadProgram(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load program", err)
	}

	var interpOpts []interp.Option
	if opts.Journal != "" {
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer j.Close()
		interpOpts = append(interpOpts, interp.WithRecorder(j))
	}

	result, err := scenario.Run(prog, interpOpts...)
	if err != nil {
		return WrapExitError(ExitFailure, "program failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if err := formatter.Success(scenario.Render(result)); err != nil {
			return err
		}
	}

	if !result.Passed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertion(s) failed", len(result.Failures)))
	}
	return nil
}

// loadProgram selects the frontend by file extension.
func loadProgram(path string) (*scenario.Program, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return compiler.CompileFile(path)
	case ".yaml", ".yml":
		return scenario.LoadProgram(path)
	default:
		return nil, fmt.Errorf("unsupported program format %q (want .yaml, .yml or .cue)", filepath.Ext(path))
	}
}
