package scenario

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/interp"
)

// TraceStep records the outcome of one program step.
type TraceStep struct {
	Index   int    `json:"index"`
	Command string `json:"command"`
	Status  string `json:"status"` // "ok" or an error kind
}

// Result is the complete outcome of one program run: the per-step trace,
// the final registry state and any assertion failures.
type Result struct {
	Program      string           `json:"program"`
	Trace        []TraceStep      `json:"trace"`
	Fields       []field.Snapshot `json:"fields"`
	TotalEnergy  float64          `json:"total_energy"`
	TotalEntropy float64          `json:"total_entropy"`
	Failures     []string         `json:"failures,omitempty"`
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes a program against a fresh interpreter session. Interpreter
// options (a journal recorder, a pre-positioned clock) pass through.
//
// A step whose outcome kind differs from its expectation aborts the run
// with an error; assertion failures do not abort, they are collected in
// the result so a report can show all of them at once.
func Run(prog *Program, opts ...interp.Option) (*Result, error) {
	in := interp.New(opts...)

	for i, setup := range prog.Fields {
		if err := in.CreateField(setup.Name, setup.Energy, setup.Frequency, setup.Position); err != nil {
			return nil, fmt.Errorf("program %q: create fields[%d] %q: %w", prog.Name, i, setup.Name, err)
		}
	}

	result := &Result{Program: prog.Name}

	for i, step := range prog.Steps {
		_, err := in.Execute(step.Command)
		status := interp.ErrorKind(err)

		expected := step.ExpectError
		if expected == "" {
			expected = interp.KindOK
		}
		if status != expected {
			return nil, fmt.Errorf("program %q: steps[%d] %q: expected %s, got %s",
				prog.Name, i, step.Command, expected, status)
		}

		result.Trace = append(result.Trace, TraceStep{
			Index:   i + 1,
			Command: step.Command,
			Status:  status,
		})
	}

	result.Fields = in.ListFields()
	result.TotalEnergy = in.TotalEnergy()
	result.TotalEntropy = in.TotalEntropy()
	result.Failures = evaluate(prog, in)

	slog.Info("program finished",
		"program", prog.Name,
		"steps", len(result.Trace),
		"fields", len(result.Fields),
		"failures", len(result.Failures),
	)
	return result, nil
}

// evaluate checks every assertion against the final state and returns
// one message per failed assertion.
func evaluate(prog *Program, in *interp.Interpreter) []string {
	var failures []string

	for i, a := range prog.Assertions {
		if msg := check(&a, in); msg != "" {
			failures = append(failures, fmt.Sprintf("assertions[%d] (%s): %s", i, a.Type, msg))
		}
	}
	return failures
}

func check(a *Assertion, in *interp.Interpreter) string {
	tolerance := a.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	switch a.Type {
	case AssertTotalEnergy:
		return checkNumeric("total energy", in.TotalEnergy(), a.Value, tolerance)

	case AssertFieldCount:
		if got := len(in.ListFields()); got != a.Count {
			return fmt.Sprintf("expected %d fields, got %d", a.Count, got)
		}
		return ""
	}

	snap, err := in.GetField(a.Field)
	if err != nil {
		return fmt.Sprintf("field %q not found", a.Field)
	}

	switch a.Type {
	case AssertFieldEnergy:
		return checkNumeric(a.Field+" energy", snap.TotalEnergy, a.Value, tolerance)
	case AssertFieldEntropy:
		return checkNumeric(a.Field+" entropy", snap.Entropy, a.Value, tolerance)
	case AssertFieldCapacity:
		return checkNumeric(a.Field+" capacity", snap.Capacity, a.Value, tolerance)
	case AssertFieldCoherence:
		return checkNumeric(a.Field+" coherence", snap.Coherence, a.Value, tolerance)
	case AssertPhaseState:
		if snap.PhaseName != a.Phase {
			return fmt.Sprintf("%s phase is %s, expected %s", a.Field, snap.PhaseName, a.Phase)
		}
	case AssertEntangledWith:
		if snap.EntangledWith != a.Partner {
			return fmt.Sprintf("%s entangled with %q, expected %q", a.Field, snap.EntangledWith, a.Partner)
		}
	}
	return ""
}

func checkNumeric(what string, got, want, tolerance float64) string {
	if math.Abs(got-want) <= tolerance {
		return ""
	}
	return fmt.Sprintf("%s is %.10g, expected %.10g (tolerance %.1g)", what, got, want, tolerance)
}
