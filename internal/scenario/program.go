// Package scenario defines field programs - declarative YAML (or CUE,
// via the compiler package) documents that set up fields, run a command
// sequence and assert on the resulting state - plus the runner and the
// golden-trace comparison used by conformance tests.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Program is one declarative field program.
type Program struct {
	// Name uniquely identifies the program; golden files are keyed by it.
	Name string `yaml:"name"`

	// Description explains what the program demonstrates or validates.
	Description string `yaml:"description"`

	// Fields declares the initial registry contents.
	Fields []FieldSetup `yaml:"fields"`

	// Steps is the command sequence, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state. Optional for demo programs.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// FieldSetup declares one initial field.
type FieldSetup struct {
	Name      string     `yaml:"name"`
	Energy    float64    `yaml:"energy"`
	Frequency float64    `yaml:"frequency,omitempty"` // default 1.0
	Position  [3]float64 `yaml:"position,omitempty"`
}

// Step is one command execution, optionally expecting a failure kind.
type Step struct {
	// Command is the operation in the symbolic notation.
	Command string `yaml:"command"`

	// ExpectError names the expected error kind ("syntax_error",
	// "insufficient_energy", ...). Empty means the step must commit.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion types.
const (
	AssertFieldEnergy    = "field_energy"
	AssertFieldEntropy   = "field_entropy"
	AssertFieldCapacity  = "field_capacity"
	AssertFieldCoherence = "field_coherence"
	AssertPhaseState     = "phase_state"
	AssertEntangledWith  = "entangled_with"
	AssertTotalEnergy    = "total_energy"
	AssertFieldCount     = "field_count"
)

// Assertion validates one property of the final state.
type Assertion struct {
	// Type selects the assertion; see the Assert* constants.
	Type string `yaml:"type"`

	// Field names the subject (all types except total_energy and
	// field_count).
	Field string `yaml:"field,omitempty"`

	// Value and Tolerance apply to the numeric assertion types.
	// Tolerance defaults to 1e-9 when omitted.
	Value     float64 `yaml:"value,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Phase is the expected state name (phase_state).
	Phase string `yaml:"phase,omitempty"`

	// Partner is the expected entanglement partner (entangled_with).
	Partner string `yaml:"partner,omitempty"`

	// Count is the expected registry size (field_count).
	Count int `yaml:"count,omitempty"`
}

// DefaultTolerance applies when a numeric assertion omits its tolerance.
const DefaultTolerance = 1e-9

// LoadProgram reads and validates a program YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently passing.
func LoadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program file: %w", err)
	}

	var prog Program
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&prog); err != nil {
		return nil, fmt.Errorf("parse program YAML: %w", err)
	}

	if err := prog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid program: %w", err)
	}
	return &prog, nil
}

// Validate checks required fields and assertion shapes.
func (p *Program) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(p.Steps) == 0 && len(p.Fields) == 0 {
		return fmt.Errorf("program must declare fields or steps")
	}

	for i, f := range p.Fields {
		if f.Name == "" {
			return fmt.Errorf("fields[%d]: name is required", i)
		}
		if f.Energy < 0 {
			return fmt.Errorf("fields[%d]: energy must be non-negative", i)
		}
	}

	for i, s := range p.Steps {
		if s.Command == "" {
			return fmt.Errorf("steps[%d]: command is required", i)
		}
	}

	for i, a := range p.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertFieldEnergy, AssertFieldEntropy, AssertFieldCapacity, AssertFieldCoherence:
		if a.Field == "" {
			return fmt.Errorf("assertions[%d]: field is required for %s", index, a.Type)
		}
	case AssertPhaseState:
		if a.Field == "" || a.Phase == "" {
			return fmt.Errorf("assertions[%d]: field and phase are required for phase_state", index)
		}
	case AssertEntangledWith:
		if a.Field == "" || a.Partner == "" {
			return fmt.Errorf("assertions[%d]: field and partner are required for entangled_with", index)
		}
	case AssertTotalEnergy:
		// no extra shape requirements
	case AssertFieldCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
