package conserve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

func pair(energyA, energyB, entropyA, entropyB float64) []*field.Field {
	return []*field.Field{
		{Name: "a", Kinetic: energyA, Entropy: entropyA},
		{Name: "b", Kinetic: energyB, Entropy: entropyB},
	}
}

// TestCheck_ConservingPass verifies an exact redistribution passes.
func TestCheck_ConservingPass(t *testing.T) {
	before := pair(200, 100, 1, 1)
	after := pair(190, 110, 1.1, 1.1)

	assert.NoError(t, Check(ir.ClassConserving, before, after))
}

// TestCheck_ConservingDrift verifies drift beyond tolerance is caught.
func TestCheck_ConservingDrift(t *testing.T) {
	before := pair(200, 100, 1, 1)
	after := pair(190, 110.001, 1, 1)

	err := Check(ir.ClassConserving, before, after)
	require.Error(t, err)

	var violation *ConservationViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 300.0, violation.Before)
	assert.InDelta(t, 300.001, violation.After, 1e-9)
}

// TestCheck_ConservingWithinTolerance verifies sub-tolerance float noise
// passes.
func TestCheck_ConservingWithinTolerance(t *testing.T) {
	before := pair(200, 100, 1, 1)
	after := pair(200, 100+1e-12, 1, 1)

	assert.NoError(t, Check(ir.ClassConserving, before, after))
}

// TestCheck_EntropyDecrease verifies the entropy law applies to every
// class, including ClassNone.
func TestCheck_EntropyDecrease(t *testing.T) {
	for _, class := range []ir.InvariantClass{ir.ClassConserving, ir.ClassEntropyOnly, ir.ClassNone} {
		before := pair(100, 100, 2, 2)
		after := pair(100, 100, 2, 1.5)

		err := Check(class, before, after)
		require.Error(t, err, "class %v", class)

		var violation *EntropyViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "b", violation.Field)
		assert.Equal(t, 2.0, violation.Before)
		assert.Equal(t, 1.5, violation.After)
	}
}

// TestCheck_EntropyOnlyIgnoresEnergy verifies non-conserving classes
// never compare energy totals.
func TestCheck_EntropyOnlyIgnoresEnergy(t *testing.T) {
	before := pair(100, 100, 1, 1)
	after := pair(500, 100, 1.5, 1)

	assert.NoError(t, Check(ir.ClassEntropyOnly, before, after))
	assert.NoError(t, Check(ir.ClassNone, before, after))
}

// TestCheck_EntropyEqualPasses verifies unchanged entropy is legal.
func TestCheck_EntropyEqualPasses(t *testing.T) {
	before := pair(100, 100, 1, 1)
	after := pair(100, 100, 1, 1)

	assert.NoError(t, Check(ir.ClassNone, before, after))
}
