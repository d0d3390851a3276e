package ops

import (
	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// Transition moves a field to the target phase state.
//
// The cost scales with the ordinal distance between current and target
// phase; if the field cannot pay it, the operation fails with
// InsufficientEnergyError before any mutation. Entropy rises with the
// distance, and a transition into plasma halves coherence.
//
// The cost is debited proportionally from both energy components, which
// keeps them non-negative and the derived total exact.
func Transition(f *field.Field, target ir.PhaseState) (ir.InvariantClass, error) {
	distance := target.Ordinal() - f.Phase.Ordinal()
	if distance < 0 {
		distance = -distance
	}
	cost := float64(distance) * PhaseCostPerStep

	total := f.TotalEnergy()
	if total < cost {
		return 0, &InsufficientEnergyError{Field: f.Name, Required: cost, Available: total}
	}

	if cost > 0 && total > 0 {
		f.ScaleEnergy(1.0 - cost/total)
	}
	f.Entropy += float64(distance) * PhaseEntropyPerStep
	if target == ir.PhasePlasma && f.Phase != ir.PhasePlasma {
		f.Coherence *= PlasmaCoherenceFactor
	}
	f.Phase = target

	return ir.ClassEntropyOnly, nil
}
