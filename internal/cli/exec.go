package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldworks/cyclic/internal/interp"
	"github.com/fieldworks/cyclic/internal/journal"
	"github.com/fieldworks/cyclic/internal/scenario"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Fields []string
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec [--field name=energy[:frequency]]... <command>...",
		Short: "Execute commands against a fresh session",
		Long: `Create fields and execute commands in one interpreter session,
then print the final state.

Each --field declares one field as name=energy, optionally with a
frequency after a colon. Commands run in argument order; a rejected
command aborts with its error kind.

Example:
  cyclic exec --field sun=200 --field planet=100 '∇F(sun↔planet)|∂E/∂t=0'
  cyclic exec --journal run.db --field plant=100 '∮regenerate(plant, 20)'`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCommands(opts, args, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Fields, "field", nil, "field declaration name=energy[:frequency] (repeatable)")
	return cmd
}

func execCommands(opts *ExecOptions, commands []string, cmd *cobra.Command) error {
	var interpOpts []interp.Option
	if opts.Journal != "" {
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer j.Close()
		interpOpts = append(interpOpts, interp.WithRecorder(j))
	}

	in := interp.New(interpOpts...)

	for _, decl := range opts.Fields {
		name, energy, frequency, err := parseFieldDecl(decl)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --field", err)
		}
		if err := in.CreateField(name, energy, frequency, [3]float64{}); err != nil {
			return WrapExitError(ExitCommandError, "failed to create field", err)
		}
	}

	result := &scenario.Result{Program: "exec"}
	for i, command := range commands {
		_, err := in.Execute(command)
		status := interp.ErrorKind(err)
		result.Trace = append(result.Trace, scenario.TraceStep{
			Index:   i + 1,
			Command: command,
			Status:  status,
		})
		if err != nil {
			result.Fields = in.ListFields()
			result.TotalEnergy = in.TotalEnergy()
			result.TotalEntropy = in.TotalEntropy()
			writeExecOutput(opts, cmd, result)
			return WrapExitError(ExitFailure, "command rejected", err)
		}
	}

	result.Fields = in.ListFields()
	result.TotalEnergy = in.TotalEnergy()
	result.TotalEntropy = in.TotalEntropy()
	return writeExecOutput(opts, cmd, result)
}

func writeExecOutput(opts *ExecOptions, cmd *cobra.Command, result *scenario.Result) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(scenario.Render(result))
}

// parseFieldDecl parses name=energy[:frequency].
func parseFieldDecl(decl string) (name string, energy, frequency float64, err error) {
	name, value, ok := strings.Cut(decl, "=")
	if !ok || name == "" {
		return "", 0, 0, fmt.Errorf("%q is not name=energy[:frequency]", decl)
	}

	energyStr, freqStr, hasFreq := strings.Cut(value, ":")
	energy, err = strconv.ParseFloat(energyStr, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("energy in %q is not numeric", decl)
	}
	if hasFreq {
		frequency, err = strconv.ParseFloat(freqStr, 64)
		if err != nil {
			return "", 0, 0, fmt.Errorf("frequency in %q is not numeric", decl)
		}
	}
	return name, energy, frequency, nil
}
