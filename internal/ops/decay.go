package ops

import (
	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// Decay removes rate of the field's current energy, converts a tenth of
// the dissipated amount into entropy, decoheres the field and erodes its
// capacity by a small fraction of the rate.
//
// Entropy strictly increases whenever rate > 0 and the field holds energy.
func Decay(f *field.Field, rate float64) (ir.InvariantClass, error) {
	if rate < 0 || rate > 1 {
		return 0, &InvalidStateError{Field: f.Name, Reason: "decay rate must be in [0, 1]"}
	}

	loss := f.TotalEnergy() * rate

	f.ScaleEnergy(1.0 - rate)
	f.Entropy += loss * DecayEntropyFactor
	f.Coherence *= DecayDecoherence
	f.Capacity *= 1.0 - DecayCapacityFactor*rate

	return ir.ClassEntropyOnly, nil
}
