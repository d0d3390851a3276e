package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fieldworks/cyclic/internal/journal"
	"github.com/fieldworks/cyclic/internal/scenario"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Run string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay --journal <path> [--run <id>]",
		Short: "Replay a journaled run and verify determinism",
		Long: `Re-execute a journaled run through the normal interpreter path and
verify that every command reproduces its recorded outcome. Prints the
rebuilt final state.

Defaults to the most recent run when --run is omitted. A divergence
exits with code 1.

Example:
  cyclic replay --journal run.db
  cyclic replay --journal run.db --run 018f2c7a-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return replayRun(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Run, "run", "", "run token to replay (default: latest)")
	return cmd
}

func replayRun(opts *ReplayOptions, cmd *cobra.Command) error {
	if opts.Journal == "" {
		return NewExitError(ExitCommandError, "replay requires --journal")
	}

	j, err := journal.OpenReadOnly(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	runID := opts.Run
	if runID == "" {
		runID, err = j.LatestRun()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to resolve run", err)
		}
	}

	in, stats, err := j.Replay(runID)
	if err != nil {
		var div *journal.DivergenceError
		if errors.As(err, &div) {
			return WrapExitError(ExitFailure, "replay diverged", err)
		}
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	result := &scenario.Result{
		Program:      "replay " + stats.RunID,
		Fields:       in.ListFields(),
		TotalEnergy:  in.TotalEnergy(),
		TotalEntropy: in.TotalEntropy(),
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(scenario.Render(result))
}
