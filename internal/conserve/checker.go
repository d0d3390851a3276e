// Package conserve validates the physical-law invariants an operation
// declares: energy conservation over the touched fields and per-field
// entropy monotonicity.
//
// The checker compares snapshots captured immediately before and after a
// handler's mutation. It never mutates anything itself - a failed check
// is reported to the interpreter facade, which owns the rollback.
package conserve

import (
	"fmt"
	"math"

	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// Tolerance is the numerical slack for both checks: energy totals may
// differ by at most this much, and entropy may appear to dip by at most
// this much before a violation is raised.
const Tolerance = 1e-10

// ConservationViolationError reports an energy-conserving operation whose
// touched-field total drifted beyond tolerance.
type ConservationViolationError struct {
	Before float64
	After  float64
}

func (e *ConservationViolationError) Error() string {
	return fmt.Sprintf("energy not conserved: %.12f J → %.12f J (Δ %.3e)",
		e.Before, e.After, math.Abs(e.After-e.Before))
}

// EntropyViolationError reports a field whose entropy decreased.
type EntropyViolationError struct {
	Field  string
	Before float64
	After  float64
}

func (e *EntropyViolationError) Error() string {
	return fmt.Sprintf("entropy of field %q decreased: %.12f → %.12f",
		e.Field, e.Before, e.After)
}

// Check verifies the declared invariant class against pre/post snapshots
// of the touched fields. The slices are index-aligned: before[i] is the
// pre-mutation clone of after[i].
//
// The entropy check applies to EVERY class, including ClassNone; the
// class only decides whether the energy totals are compared.
func Check(class ir.InvariantClass, before, after []*field.Field) error {
	if class == ir.ClassConserving {
		var sumBefore, sumAfter float64
		for _, f := range before {
			sumBefore += f.TotalEnergy()
		}
		for _, f := range after {
			sumAfter += f.TotalEnergy()
		}
		if math.Abs(sumAfter-sumBefore) > Tolerance {
			return &ConservationViolationError{Before: sumBefore, After: sumAfter}
		}
	}

	for i := range before {
		if after[i].Entropy < before[i].Entropy-Tolerance {
			return &EntropyViolationError{
				Field:  after[i].Name,
				Before: before[i].Entropy,
				After:  after[i].Entropy,
			}
		}
	}

	return nil
}
