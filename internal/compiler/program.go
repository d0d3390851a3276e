// Package compiler parses CUE program documents into runnable field
// programs. CUE is the typed frontend: a program authored in CUE gets
// constraint checking and composition from the CUE evaluator before the
// runner ever sees it, while the YAML loader in the scenario package
// stays the plain-data path.
package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/fieldworks/cyclic/internal/scenario"
)

// CompileFile loads a CUE file and compiles its top-level "program"
// struct into a field program.
func CompileFile(path string) (*scenario.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program file: %w", err)
	}
	return CompileSource(path, src)
}

// CompileSource compiles CUE source bytes. The filename is used for
// error positions only.
func CompileSource(filename string, src []byte) (*scenario.Program, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	progVal := v.LookupPath(cue.ParsePath("program"))
	if !progVal.Exists() {
		return nil, &CompileError{
			Field:   "program",
			Message: "top-level program struct is required",
			Pos:     v.Pos(),
		}
	}
	return CompileProgram(progVal)
}

// CompileProgram parses a CUE value holding one program struct.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
func CompileProgram(v cue.Value) (*scenario.Program, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	prog := &scenario.Program{}

	name, err := requiredString(v, "name")
	if err != nil {
		return nil, err
	}
	prog.Name = name

	description, err := requiredString(v, "description")
	if err != nil {
		return nil, err
	}
	prog.Description = description

	prog.Fields, err = parseFields(v)
	if err != nil {
		return nil, err
	}

	prog.Steps, err = parseSteps(v)
	if err != nil {
		return nil, err
	}

	prog.Assertions, err = parseAssertions(v)
	if err != nil {
		return nil, err
	}

	if err := prog.Validate(); err != nil {
		return nil, &CompileError{
			Field:   "program",
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return prog, nil
}

func parseFields(v cue.Value) ([]scenario.FieldSetup, error) {
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, nil
	}

	iter, err := fieldsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var fields []scenario.FieldSetup
	for iter.Next() {
		item := iter.Value()

		var setup scenario.FieldSetup
		if setup.Name, err = requiredString(item, "name"); err != nil {
			return nil, err
		}
		if setup.Energy, err = requiredFloat(item, "energy"); err != nil {
			return nil, err
		}
		if setup.Frequency, err = optionalFloat(item, "frequency"); err != nil {
			return nil, err
		}
		if setup.Position, err = optionalVec(item, "position"); err != nil {
			return nil, err
		}
		fields = append(fields, setup)
	}
	return fields, nil
}

func parseSteps(v cue.Value) ([]scenario.Step, error) {
	stepsVal := v.LookupPath(cue.ParsePath("steps"))
	if !stepsVal.Exists() {
		return nil, nil
	}

	iter, err := stepsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var steps []scenario.Step
	for iter.Next() {
		item := iter.Value()

		// A bare string is shorthand for a step with no expectation.
		if command, err := item.String(); err == nil {
			steps = append(steps, scenario.Step{Command: command})
			continue
		}

		var step scenario.Step
		if step.Command, err = requiredString(item, "command"); err != nil {
			return nil, err
		}
		if step.ExpectError, err = optionalString(item, "expect_error"); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseAssertions(v cue.Value) ([]scenario.Assertion, error) {
	assertVal := v.LookupPath(cue.ParsePath("assertions"))
	if !assertVal.Exists() {
		return nil, nil
	}

	iter, err := assertVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var assertions []scenario.Assertion
	for iter.Next() {
		item := iter.Value()

		var a scenario.Assertion
		if a.Type, err = requiredString(item, "type"); err != nil {
			return nil, err
		}
		if a.Field, err = optionalString(item, "field"); err != nil {
			return nil, err
		}
		if a.Value, err = optionalFloat(item, "value"); err != nil {
			return nil, err
		}
		if a.Tolerance, err = optionalFloat(item, "tolerance"); err != nil {
			return nil, err
		}
		if a.Phase, err = optionalString(item, "phase"); err != nil {
			return nil, err
		}
		if a.Partner, err = optionalString(item, "partner"); err != nil {
			return nil, err
		}

		countVal := item.LookupPath(cue.ParsePath("count"))
		if countVal.Exists() {
			count, err := countVal.Int64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			a.Count = int(count)
		}
		assertions = append(assertions, a)
	}
	return assertions, nil
}

func requiredString(v cue.Value, path string) (string, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return "", &CompileError{Field: path, Message: path + " is required", Pos: v.Pos()}
	}
	s, err := val.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, path string) (string, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return "", nil
	}
	s, err := val.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func requiredFloat(v cue.Value, path string) (float64, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return 0, &CompileError{Field: path, Message: path + " is required", Pos: v.Pos()}
	}
	f, err := val.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

func optionalFloat(v cue.Value, path string) (float64, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return 0, nil
	}
	f, err := val.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

func optionalVec(v cue.Value, path string) ([3]float64, error) {
	var vec [3]float64

	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return vec, nil
	}

	iter, err := val.List()
	if err != nil {
		return vec, formatCUEError(err)
	}

	i := 0
	for iter.Next() {
		if i >= 3 {
			return vec, &CompileError{
				Field:   path,
				Message: "position must have exactly 3 components",
				Pos:     val.Pos(),
			}
		}
		f, err := iter.Value().Float64()
		if err != nil {
			return vec, formatCUEError(err)
		}
		vec[i] = f
		i++
	}
	if i != 3 {
		return vec, &CompileError{
			Field:   path,
			Message: "position must have exactly 3 components",
			Pos:     val.Pos(),
		}
	}
	return vec, nil
}

// CompileError is a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE's multi-errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
