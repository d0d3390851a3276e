package ops

import (
	"math"

	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// SpatialGradient applies position-aware energy flow ∇spatial(a, b).
//
// The flow rate is proportional to the energy difference over the
// distance between the two fields, with SpatialEpsilon flooring the
// distance so coincident positions cannot divide by zero. Energy moves
// from the higher- to the lower-energy field, capped at the donor's
// total; both gradients shift along the separation vector. Conserving.
func SpatialGradient(a, b *field.Field) ir.InvariantClass {
	separation := b.Position.Sub(a.Position)
	distance := separation.Norm()
	if distance < SpatialEpsilon {
		distance = SpatialEpsilon
	}

	gradientStrength := (a.TotalEnergy() - b.TotalEnergy()) / distance
	flow := SpatialFlowGain * gradientStrength

	// The epsilon floor can overshoot across a large imbalance; the flow
	// never moves more than the donor holds, keeping totals non-negative.
	if flow > a.TotalEnergy() {
		flow = a.TotalEnergy()
	} else if flow < -b.TotalEnergy() {
		flow = -b.TotalEnergy()
	}

	step := separation.Scale(SpatialGradientGain)
	a.Gradient = a.Gradient.Sub(step)
	b.Gradient = b.Gradient.Add(step)

	a.AddEnergy(-flow)
	b.AddEnergy(flow)

	entropyInc := math.Abs(flow) * SpatialEntropyFactor
	a.Entropy += entropyInc
	b.Entropy += entropyInc

	return ir.ClassConserving
}
