package ops

import (
	"math"
	"sort"

	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// Exchange applies the bidirectional energy exchange a↔b.
//
// The flow is proportional to the energy difference, so it always moves
// energy from the higher- to the lower-energy field and conserves the
// pair's total exactly. Both sides pay a small entropy increase and lose
// a little coherence; their phase angles are pulled toward each other.
func Exchange(a, b *field.Field) ir.InvariantClass {
	flow := ExchangeCoupling * (a.TotalEnergy() - b.TotalEnergy())
	entropyInc := math.Abs(flow) * ExchangeEntropyFactor
	phaseCoupling := PhaseCouplingGain * (b.PhaseAngle - a.PhaseAngle)

	a.AddEnergy(-flow)
	b.AddEnergy(flow)

	a.Entropy += entropyInc
	b.Entropy += entropyInc

	a.Coherence *= ExchangeDecoherence
	b.Coherence *= ExchangeDecoherence

	a.PhaseAngle += phaseCoupling
	b.PhaseAngle -= phaseCoupling

	return ir.ClassConserving
}

// Network applies Exchange once to every unordered pair of the given
// fields. Pairs run in lexicographic order by field name so a network
// command produces bit-identical results on every run regardless of the
// operand order in the command text. Each pairwise step individually
// conserves, so the whole batch does.
func Network(fields []*field.Field) ir.InvariantClass {
	sorted := make([]*field.Field, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			Exchange(sorted[i], sorted[j])
		}
	}
	return ir.ClassConserving
}
