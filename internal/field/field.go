package field

import (
	"math"

	"github.com/fieldworks/cyclic/internal/ir"
)

// Vec3 is a spatial 3-vector used for positions and gradients.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Field is one named energy-bearing entity.
//
// Total energy is DERIVED: TotalEnergy() == Kinetic + Potential, always.
// The components are the stored state; nothing ever stores a separate
// total that could drift out of sync with them.
//
// Invariants maintained by the interpreter after every operation:
//   - 0 <= Coherence <= 1 (clamped)
//   - 0 <= PhaseAngle < 2π (normalized)
//   - Entropy never decreases across the entity's lifetime
//   - Capacity >= 0
type Field struct {
	// Name is the immutable registry key.
	Name string

	// Kinetic and Potential are the energy components in joule-like units.
	Kinetic   float64
	Potential float64

	// Entropy is the non-decreasing disorder measure. New fields start
	// at 1.0.
	Entropy float64

	// Coherence is the quantum-correlation measure in [0, 1].
	Coherence float64

	// PhaseAngle is the oscillation phase in radians, [0, 2π).
	PhaseAngle float64

	// Capacity is the regenerative potential, >= 0, starting at 1.0.
	Capacity float64

	// Age counts the operations this field has participated in.
	Age int

	// Phase is the matter-like state.
	Phase ir.PhaseState

	// Frequency is the oscillation frequency (Hz-like), > 0.
	Frequency float64

	// EntangledWith names the entanglement partner, or "" if unset.
	// The relation is symmetric: if A names B, B names A.
	EntangledWith string

	// Position and Gradient are used by the spatial operations.
	Position Vec3
	Gradient Vec3

	// FractalDepth is 0 for created fields and parent+depth for spawns.
	FractalDepth int
}

// InitialEntropy is the entropy assigned to every newly created field.
const InitialEntropy = 1.0

// TotalEnergy returns the derived total, kinetic + potential.
func (f *Field) TotalEnergy() float64 {
	return f.Kinetic + f.Potential
}

// AddEnergy distributes a signed energy delta over the components using
// the canonical 60/40 kinetic/potential split. Every operation that moves
// a scalar amount of energy uses this split.
func (f *Field) AddEnergy(delta float64) {
	f.Kinetic += delta * 0.6
	f.Potential += delta * 0.4
}

// ScaleEnergy multiplies both components by the same factor, preserving
// the kinetic/potential ratio.
func (f *Field) ScaleEnergy(factor float64) {
	f.Kinetic *= factor
	f.Potential *= factor
}

// Normalize clamps coherence into [0, 1], wraps the phase angle into
// [0, 2π) and floors capacity at zero. Applied unconditionally after
// every operation, independent of its invariant class.
func (f *Field) Normalize() {
	if f.Coherence < 0 {
		f.Coherence = 0
	} else if f.Coherence > 1 {
		f.Coherence = 1
	}
	f.PhaseAngle = math.Mod(f.PhaseAngle, 2*math.Pi)
	if f.PhaseAngle < 0 {
		f.PhaseAngle += 2 * math.Pi
	}
	if f.Capacity < 0 {
		f.Capacity = 0
	}
}

// Clone returns an independent deep copy, used for snapshots and rollback.
func (f *Field) Clone() *Field {
	c := *f
	return &c
}

// Restore overwrites f's state with the snapshot's. The name is part of
// the snapshot and must match; Restore is only ever called with a clone
// of the same entity.
func (f *Field) Restore(snap *Field) {
	*f = *snap
}

// Snapshot is a read-only copy of a field's state, returned across the
// public interpreter boundary.
type Snapshot struct {
	Name          string        `json:"name"`
	TotalEnergy   float64       `json:"total_energy"`
	Kinetic       float64       `json:"kinetic"`
	Potential     float64       `json:"potential"`
	Entropy       float64       `json:"entropy"`
	Coherence     float64       `json:"coherence"`
	PhaseAngle    float64       `json:"phase_angle"`
	Capacity      float64       `json:"capacity"`
	Age           int           `json:"age"`
	Phase         ir.PhaseState `json:"-"`
	PhaseName     string        `json:"phase_state"`
	Frequency     float64       `json:"frequency"`
	EntangledWith string        `json:"entangled_with,omitempty"`
	Position      [3]float64    `json:"position"`
	Gradient      [3]float64    `json:"gradient"`
	FractalDepth  int           `json:"fractal_depth"`
}

// Snapshot captures the field's current state as a detached copy.
func (f *Field) Snapshot() Snapshot {
	return Snapshot{
		Name:          f.Name,
		TotalEnergy:   f.TotalEnergy(),
		Kinetic:       f.Kinetic,
		Potential:     f.Potential,
		Entropy:       f.Entropy,
		Coherence:     f.Coherence,
		PhaseAngle:    f.PhaseAngle,
		Capacity:      f.Capacity,
		Age:           f.Age,
		Phase:         f.Phase,
		PhaseName:     f.Phase.String(),
		Frequency:     f.Frequency,
		EntangledWith: f.EntangledWith,
		Position:      [3]float64{f.Position.X, f.Position.Y, f.Position.Z},
		Gradient:      [3]float64{f.Gradient.X, f.Gradient.Y, f.Gradient.Z},
		FractalDepth:  f.FractalDepth,
	}
}
