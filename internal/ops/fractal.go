package ops

import (
	"fmt"
	"math"

	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// FractalSpawn builds 2^depth offspring of the parent field.
//
// Each spawn carries energy/2^depth and frequency*2^depth, the parent's
// phase state and coherence, a phase angle fanned evenly over the circle,
// and a deterministic position offset on a small grid around the parent.
// The parent's own energy is untouched - spawns are new capacity, not a
// redistribution - so the registry's total energy increases by the
// parent's energy and the operation is ClassNone by design.
//
// The returned spawns are NOT registered; the caller inserts them only
// after the invariant check passes, so a rejected operation leaves no
// stray entities behind.
func FractalSpawn(parent *field.Field, depth int) ([]*field.Field, ir.InvariantClass, error) {
	if depth > MaxFractalDepth {
		return nil, 0, &InvalidStateError{
			Field:  parent.Name,
			Reason: fmt.Sprintf("fractal depth %d exceeds limit %d", depth, MaxFractalDepth),
		}
	}

	count := 1 << depth
	scale := float64(count)
	spawns := make([]*field.Field, 0, count)

	for i := 0; i < count; i++ {
		offset := field.Vec3{
			X: float64(i%2) * FractalSpacing,
			Y: float64((i/2)%2) * FractalSpacing,
			Z: float64(i/4) * FractalSpacing,
		}
		spawns = append(spawns, &field.Field{
			Name:         SpawnName(parent.Name, depth, i),
			Kinetic:      parent.Kinetic / scale,
			Potential:    parent.Potential / scale,
			Entropy:      parent.Entropy / scale,
			Coherence:    parent.Coherence,
			PhaseAngle:   parent.PhaseAngle + float64(i)*(2*math.Pi/scale),
			Capacity:     parent.Capacity * FractalCapacityFactor,
			Age:          0,
			Phase:        parent.Phase,
			Frequency:    parent.Frequency * scale,
			Position:     parent.Position.Add(offset),
			Gradient:     parent.Gradient,
			FractalDepth: parent.FractalDepth + depth,
		})
	}

	return spawns, ir.ClassNone, nil
}

// SpawnName is the deterministic name of the i-th spawn at a given depth.
// Exposed so the interpreter can pre-check name collisions before any
// mutation happens.
func SpawnName(parent string, depth, i int) string {
	return fmt.Sprintf("%s_fractal_%d_%d", parent, depth, i)
}
