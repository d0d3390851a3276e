package ops

import "fmt"

// InvalidStateError reports an operation precondition violation, such as
// entangling a field that is already entangled with a third party.
type InvalidStateError struct {
	Field  string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state for field %q: %s", e.Field, e.Reason)
}

// InsufficientEnergyError reports a phase transition whose cost exceeds
// the field's available energy. No mutation has occurred.
type InsufficientEnergyError struct {
	Field     string
	Required  float64
	Available float64
}

func (e *InsufficientEnergyError) Error() string {
	return fmt.Sprintf("field %q has %.4f J but the transition requires %.4f J",
		e.Field, e.Available, e.Required)
}
