package ops

import (
	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// Regenerate applies the regenerative cycle: 70% of the input becomes
// energy, 30% grows capacity, and the capacity growth scales the
// effective energy gain - efficiency improves with capacity, producing
// compound growth over repeated calls.
//
// The input is an external injection, so the operation is ClassNone for
// conservation; entropy still must not decrease (it rises slightly with
// the processed input).
func Regenerate(f *field.Field, input float64) ir.InvariantClass {
	regenerate(f, input)
	return ir.ClassNone
}

// regenerate is the shared regenerative kernel, also used by symbiosis.
func regenerate(f *field.Field, input float64) {
	work := input * RegenWorkFraction
	capacityGrowth := input * RegenCapacityFraction

	newCapacity := f.Capacity * (1.0 + capacityGrowth/100.0)
	bonus := 0.0
	if f.Capacity > 0 {
		bonus = newCapacity/f.Capacity - 1.0
		if bonus > RegenEfficiencyCap {
			bonus = RegenEfficiencyCap
		}
	}

	f.AddEnergy(work)
	f.ScaleEnergy(1.0 + bonus)

	f.Entropy += input * RegenEntropyFactor
	f.Coherence += RegenCoherenceGain
	f.Capacity = newCapacity
}

// Symbiosis applies the mutual-benefit coupling a⇄b: each field feeds 5%
// of its energy through the partner's regenerative kernel, both pay a
// shared interaction cost an order of magnitude smaller, and their
// frequencies entrain to the common mean.
func Symbiosis(a, b *field.Field) ir.InvariantClass {
	contribA := a.TotalEnergy() * SymbiosisShare
	contribB := b.TotalEnergy() * SymbiosisShare

	regenerate(a, contribB)
	regenerate(b, contribA)

	cost := SymbiosisCostFactor * (contribA + contribB)
	a.AddEnergy(-cost / 2)
	b.AddEnergy(-cost / 2)

	meanFrequency := (a.Frequency + b.Frequency) / 2
	a.Frequency = meanFrequency
	b.Frequency = meanFrequency

	return ir.ClassEntropyOnly
}
