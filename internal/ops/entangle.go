package ops

import (
	"math"

	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// Entangle records the symmetric entanglement relation between a and b
// and boosts both fields' coherence by the averaged-coherence rule.
//
// A field already entangled with a third party must be cleared first;
// re-entangling an existing pair is allowed and only refreshes the
// coherence boost. No energy moves, so the operation is declared
// energy-conserving.
func Entangle(reg *field.Registry, a, b *field.Field) (ir.InvariantClass, error) {
	if a.Name == b.Name {
		return 0, &InvalidStateError{Field: a.Name, Reason: "cannot entangle a field with itself"}
	}
	if a.EntangledWith != "" && a.EntangledWith != b.Name {
		return 0, &InvalidStateError{Field: a.Name, Reason: "already entangled with " + a.EntangledWith}
	}
	if b.EntangledWith != "" && b.EntangledWith != a.Name {
		return 0, &InvalidStateError{Field: b.Name, Reason: "already entangled with " + b.EntangledWith}
	}

	shared := (a.Coherence + b.Coherence) / 2
	a.Coherence = shared + EntangleCoherenceBoost
	b.Coherence = shared + EntangleCoherenceBoost

	reg.Entangle(a, b)

	return ir.ClassConserving, nil
}

// Resonate applies frequency-matched amplification ~(a ≈ b).
//
// The amplification factor 1 + ResonanceGain*exp(-|Δf|) approaches its
// 20% cap as the frequencies converge. Both fields' energies scale by the
// factor, both coherences rise with the resonance strength, and both
// phase angles lock to the common mean.
//
// Resonance injects energy by design and is ClassNone - it is the
// documented exception to strict conservation, not a check to be fudged.
func Resonate(a, b *field.Field) ir.InvariantClass {
	strength := math.Exp(-math.Abs(a.Frequency - b.Frequency))
	amplification := 1.0 + ResonanceGain*strength

	meanPhase := (a.PhaseAngle + b.PhaseAngle) / 2

	a.ScaleEnergy(amplification)
	b.ScaleEnergy(amplification)

	a.Coherence += ResonanceCoherenceGain * strength
	b.Coherence += ResonanceCoherenceGain * strength

	a.PhaseAngle = meanPhase
	b.PhaseAngle = meanPhase

	return ir.ClassNone
}
