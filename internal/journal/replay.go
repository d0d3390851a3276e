package journal

import (
	"fmt"
	"log/slog"

	"github.com/fieldworks/cyclic/internal/interp"
)

// DivergenceError reports a replayed command whose outcome differs from
// the recorded one. The interpreter is deterministic by construction, so
// a divergence means the journal and the code disagree - typically a
// journal from an incompatible version.
type DivergenceError struct {
	Seq      int64
	Command  string
	Recorded string
	Replayed string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("replay diverged at seq %d (%q): recorded %s, replayed %s",
		e.Seq, e.Command, e.Recorded, e.Replayed)
}

// ReplayStats summarizes a verified replay.
type ReplayStats struct {
	RunID    string
	Creates  int
	Commands int
}

// Replay rebuilds interpreter state by re-executing a run's journal in
// logical clock order through the normal execution path, verifying that
// every command reproduces its recorded outcome kind.
//
// Returns the rebuilt interpreter so callers can inspect or extend the
// final state.
func (j *Journal) Replay(runID string) (*interp.Interpreter, *ReplayStats, error) {
	events, err := j.Events(runID)
	if err != nil {
		return nil, nil, err
	}

	in := interp.New()
	stats := &ReplayStats{RunID: runID}

	for _, ev := range events {
		switch ev.Type {
		case "create":
			if err := in.CreateField(ev.Name, ev.Energy, ev.Frequency, ev.Position); err != nil {
				return nil, nil, &DivergenceError{
					Seq:      ev.Seq,
					Command:  "create " + ev.Name,
					Recorded: interp.KindOK,
					Replayed: interp.ErrorKind(err),
				}
			}
			stats.Creates++

		case "execute":
			_, execErr := in.Execute(ev.Command)
			if got := interp.ErrorKind(execErr); got != ev.Status {
				return nil, nil, &DivergenceError{
					Seq:      ev.Seq,
					Command:  ev.Command,
					Recorded: ev.Status,
					Replayed: got,
				}
			}
			stats.Commands++

		default:
			return nil, nil, fmt.Errorf("unknown event type %q at seq %d", ev.Type, ev.Seq)
		}
	}

	slog.Info("replay verified",
		"run", runID,
		"creates", stats.Creates,
		"commands", stats.Commands,
	)
	return in, stats, nil
}
