package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <program.yaml|program.cue>",
		Short: "Validate a field program without running it",
		Long: `Load and validate a program file - YAML directly, .cue through the
CUE frontend - and report its shape. Nothing is executed.

Example:
  cyclic validate programs/ecosystem.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "validation failed", err)
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return formatter.Success(map[string]any{
					"program":    prog.Name,
					"fields":     len(prog.Fields),
					"steps":      len(prog.Steps),
					"assertions": len(prog.Assertions),
				})
			}
			return formatter.Success(fmt.Sprintf("program %q valid: %d fields, %d steps, %d assertions",
				prog.Name, len(prog.Fields), len(prog.Steps), len(prog.Assertions)))
		},
	}
	return cmd
}
