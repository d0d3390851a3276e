package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/cyclic/internal/ir"
)

// TestTotalEnergy_Derived verifies the total is always the component sum.
func TestTotalEnergy_Derived(t *testing.T) {
	f := &Field{Kinetic: 60, Potential: 40}
	assert.Equal(t, 100.0, f.TotalEnergy())
}

// TestAddEnergy_Split verifies the 60/40 distribution for both signs.
func TestAddEnergy_Split(t *testing.T) {
	f := &Field{Kinetic: 100}

	f.AddEnergy(10)
	assert.InDelta(t, 106.0, f.Kinetic, 1e-12)
	assert.InDelta(t, 4.0, f.Potential, 1e-12)

	f.AddEnergy(-10)
	assert.InDelta(t, 100.0, f.Kinetic, 1e-12)
	assert.InDelta(t, 0.0, f.Potential, 1e-12)
}

// TestScaleEnergy_PreservesRatio verifies proportional scaling.
func TestScaleEnergy_PreservesRatio(t *testing.T) {
	f := &Field{Kinetic: 80, Potential: 20}
	f.ScaleEnergy(0.5)
	assert.InDelta(t, 40.0, f.Kinetic, 1e-12)
	assert.InDelta(t, 10.0, f.Potential, 1e-12)
}

// TestNormalize verifies the coherence clamp, phase wrap and capacity
// floor.
func TestNormalize(t *testing.T) {
	f := &Field{Coherence: 1.7, PhaseAngle: 3 * math.Pi, Capacity: -0.2}
	f.Normalize()
	assert.Equal(t, 1.0, f.Coherence)
	assert.InDelta(t, math.Pi, f.PhaseAngle, 1e-12)
	assert.Equal(t, 0.0, f.Capacity)

	f = &Field{Coherence: -0.3, PhaseAngle: -math.Pi / 2}
	f.Normalize()
	assert.Equal(t, 0.0, f.Coherence)
	assert.InDelta(t, 3*math.Pi/2, f.PhaseAngle, 1e-12)
}

// TestCloneRestore verifies rollback round-trips every attribute.
func TestCloneRestore(t *testing.T) {
	f := &Field{
		Name:          "probe",
		Kinetic:       50,
		Potential:     25,
		Entropy:       2.5,
		Coherence:     0.4,
		PhaseAngle:    1.0,
		Capacity:      1.2,
		Age:           7,
		Phase:         ir.PhaseGas,
		Frequency:     3.0,
		EntangledWith: "twin",
		Position:      Vec3{1, 2, 3},
		Gradient:      Vec3{0.1, 0, 0},
		FractalDepth:  2,
	}

	snap := f.Clone()
	f.Kinetic = 0
	f.Entropy = 99
	f.Phase = ir.PhasePlasma
	f.EntangledWith = ""

	f.Restore(snap)
	assert.Equal(t, 50.0, f.Kinetic)
	assert.Equal(t, 2.5, f.Entropy)
	assert.Equal(t, ir.PhaseGas, f.Phase)
	assert.Equal(t, "twin", f.EntangledWith)
}

// TestSnapshot verifies the detached copy carries the derived total and
// the phase display name.
func TestSnapshot(t *testing.T) {
	f := &Field{
		Name:      "probe",
		Kinetic:   30,
		Potential: 20,
		Entropy:   1.0,
		Phase:     ir.PhaseLiquid,
		Position:  Vec3{1, 0, 0},
	}

	snap := f.Snapshot()
	assert.Equal(t, 50.0, snap.TotalEnergy)
	assert.Equal(t, "liquid", snap.PhaseName)
	assert.Equal(t, [3]float64{1, 0, 0}, snap.Position)

	// Mutating the field must not affect the snapshot.
	f.Kinetic = 0
	assert.Equal(t, 50.0, snap.TotalEnergy)
}

// TestVec3 covers the vector helpers used by the spatial operations.
func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 2}
	b := Vec3{1, 0, 0}

	assert.Equal(t, Vec3{2, 2, 2}, a.Add(b))
	assert.Equal(t, Vec3{0, 2, 2}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 4}, a.Scale(2))
	assert.Equal(t, 3.0, a.Norm())
}

// TestRegistry_CreateDefaults verifies new fields start all-kinetic at
// entropy 1, capacity 1, normal phase, frequency defaulted to 1.
func TestRegistry_CreateDefaults(t *testing.T) {
	reg := NewRegistry()

	f, err := reg.Create("sun", 200, CreateSpec{})
	require.NoError(t, err)
	assert.Equal(t, 200.0, f.Kinetic)
	assert.Equal(t, 0.0, f.Potential)
	assert.Equal(t, InitialEntropy, f.Entropy)
	assert.Equal(t, 1.0, f.Capacity)
	assert.Equal(t, ir.PhaseNormal, f.Phase)
	assert.Equal(t, 1.0, f.Frequency)
	assert.Equal(t, 0, f.Age)
}

// TestRegistry_DuplicateName verifies name uniqueness.
func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("sun", 200, CreateSpec{})
	require.NoError(t, err)

	_, err = reg.Create("sun", 50, CreateSpec{})
	require.Error(t, err)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "sun", dup.Name)
}

// TestRegistry_ResolveUnknown verifies the unknown-field error carries
// the name.
func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Resolve("ghost")
	require.Error(t, err)

	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
}

// TestRegistry_AllSorted verifies deterministic iteration order.
func TestRegistry_AllSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := reg.Create(name, 1, CreateSpec{})
		require.NoError(t, err)
	}

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "mid", all[1].Name)
	assert.Equal(t, "zeta", all[2].Name)
}

// TestRegistry_EntangleSymmetry verifies both sides of the relation are
// written and cleared together.
func TestRegistry_EntangleSymmetry(t *testing.T) {
	reg := NewRegistry()
	a, err := reg.Create("a", 1, CreateSpec{})
	require.NoError(t, err)
	b, err := reg.Create("b", 1, CreateSpec{})
	require.NoError(t, err)

	reg.Entangle(a, b)
	assert.Equal(t, "b", a.EntangledWith)
	assert.Equal(t, "a", b.EntangledWith)

	reg.ClearEntanglement(a)
	assert.Empty(t, a.EntangledWith)
	assert.Empty(t, b.EntangledWith)
}

// TestRegistry_RemoveClearsPartner verifies removal never leaves a
// dangling entanglement reference.
func TestRegistry_RemoveClearsPartner(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.Create("a", 1, CreateSpec{})
	b, _ := reg.Create("b", 1, CreateSpec{})
	reg.Entangle(a, b)

	reg.Remove("a")
	assert.False(t, reg.Has("a"))
	assert.Empty(t, b.EntangledWith)
}

// TestRegistry_Insert verifies externally built fields join the registry
// with the same uniqueness rule.
func TestRegistry_Insert(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Insert(&Field{Name: "spawn"}))
	assert.True(t, reg.Has("spawn"))
	assert.Equal(t, 1, reg.Len())

	err := reg.Insert(&Field{Name: "spawn"})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
}
