package ir

// OpKind identifies one of the ten recognized operations.
type OpKind int

const (
	// OpExchange is the bidirectional energy exchange: ∇F(a↔b)|∂E/∂t=0
	OpExchange OpKind = iota

	// OpRegenerate is the regenerative cycle: ∮regenerate(field, energy)
	OpRegenerate

	// OpDecay is natural decay: ∂decay(field, rate)
	OpDecay

	// OpSymbiosis is mutual capacity growth: ∇∇(a⇄b)
	OpSymbiosis

	// OpEntangle is quantum entanglement: ⊗(a, b)
	OpEntangle

	// OpResonance is frequency-matched amplification: ~(a ≈ b)
	OpResonance

	// OpPhase is a phase transition: ∂phase(field, target_phase)
	OpPhase

	// OpFractal is fractal generation: ∮^n(field, depth)
	OpFractal

	// OpSpatial is spatial gradient flow: ∇spatial(a, b)
	OpSpatial

	// OpNetwork is the multi-field network: ∇³F(a↔b↔c...)
	OpNetwork
)

// kindNames maps OpKind to its display name. Indexed by OpKind value.
var kindNames = [...]string{
	OpExchange:   "exchange",
	OpRegenerate: "regenerate",
	OpDecay:      "decay",
	OpSymbiosis:  "symbiosis",
	OpEntangle:   "entangle",
	OpResonance:  "resonance",
	OpPhase:      "phase_transition",
	OpFractal:    "fractal",
	OpSpatial:    "spatial_gradient",
	OpNetwork:    "network",
}

// String returns the operation's display name.
func (k OpKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// InvariantClass declares which conservation law the checker must verify
// after an operation runs.
//
// The entropy check (non-decreasing per field) applies to EVERY class,
// including ClassNone. The class only controls whether total energy over
// the touched fields is compared before/after.
type InvariantClass int

const (
	// ClassConserving requires total energy over touched fields to match
	// before/after within tolerance, plus the entropy check.
	ClassConserving InvariantClass = iota

	// ClassEntropyOnly requires only the entropy check.
	ClassEntropyOnly

	// ClassNone marks operations that inject or create energy by design
	// (regeneration input, resonance amplification, fractal spawning).
	// Only the entropy check applies.
	ClassNone
)

// String returns the class name used in logs and traces.
func (c InvariantClass) String() string {
	switch c {
	case ClassConserving:
		return "energy-conserving"
	case ClassEntropyOnly:
		return "entropy-only"
	case ClassNone:
		return "none"
	default:
		return "unknown"
	}
}

// Request is the parsed form of a single command: the operation kind plus
// its operand field names and numeric parameters. Only the fields relevant
// to the tagged kind are populated.
type Request struct {
	// Kind is the operation tag. Dispatch must be exhaustive over it.
	Kind OpKind

	// Fields holds the operand field names in command order.
	// Exchange/symbiosis/entangle/resonance/spatial carry exactly two,
	// regenerate/decay/phase/fractal exactly one, network three or more.
	Fields []string

	// Energy is the external energy input (regenerate only).
	Energy float64

	// Rate is the decay fraction per call (decay only).
	Rate float64

	// TargetPhase is the transition target (phase only).
	TargetPhase PhaseState

	// Depth is the fractal spawn depth, >= 1 (fractal only).
	Depth int

	// Command is the raw (normalized) command text, kept for error
	// reporting and journaling.
	Command string
}
