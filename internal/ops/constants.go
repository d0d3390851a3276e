package ops

// Numeric constants of the operation algorithms. These reproduce the
// documented traces (regenerate, decay and resonance scenarios); changing
// any of them changes committed numeric state.
const (
	// ExchangeCoupling scales the energy flow of a bidirectional exchange:
	// flow = ExchangeCoupling * (E_a - E_b).
	ExchangeCoupling = 0.1

	// ExchangeEntropyFactor converts moved energy into the entropy
	// increase each side pays for the exchange.
	ExchangeEntropyFactor = 0.01

	// PhaseCouplingGain pulls two exchanging fields' phase angles toward
	// each other.
	PhaseCouplingGain = 0.1

	// ExchangeDecoherence is the per-exchange coherence retention factor.
	ExchangeDecoherence = 0.99

	// RegenWorkFraction of the input becomes energy; the rest grows
	// capacity.
	RegenWorkFraction     = 0.7
	RegenCapacityFraction = 0.3

	// RegenEfficiencyCap bounds the compound efficiency bonus per call.
	RegenEfficiencyCap = 0.2

	// RegenEntropyFactor is the entropy cost per unit of input energy.
	RegenEntropyFactor = 0.005

	// RegenCoherenceGain is the small per-cycle coherence improvement.
	RegenCoherenceGain = 0.01

	// DecayEntropyFactor converts dissipated energy into entropy.
	DecayEntropyFactor = 0.1

	// DecayDecoherence is the per-decay coherence retention factor.
	DecayDecoherence = 0.95

	// DecayCapacityFactor scales the capacity loss with the decay rate:
	// capacity *= 1 - DecayCapacityFactor*rate.
	DecayCapacityFactor = 0.1

	// SymbiosisShare is the fraction of each field's energy contributed
	// to the partner's capacity growth.
	SymbiosisShare = 0.05

	// SymbiosisCostFactor prices the interaction an order of magnitude
	// below the contributions themselves.
	SymbiosisCostFactor = 0.01

	// EntangleCoherenceBoost is added to the averaged coherence of both
	// partners (clamped to 1 afterwards).
	EntangleCoherenceBoost = 0.2

	// ResonanceGain bounds amplification: the factor 1 + ResonanceGain *
	// exp(-|Δf|) never exceeds 1 + ResonanceGain = 1.20.
	ResonanceGain = 0.2

	// ResonanceCoherenceGain scales the coherence rise with resonance
	// strength.
	ResonanceCoherenceGain = 0.1

	// PhaseCostPerStep is the energy charged per ordinal step of a phase
	// transition.
	PhaseCostPerStep = 10.0

	// PhaseEntropyPerStep is the entropy added per ordinal step.
	PhaseEntropyPerStep = 2.0

	// PlasmaCoherenceFactor halves coherence on transition into plasma.
	PlasmaCoherenceFactor = 0.5

	// FractalCapacityFactor reduces each spawn's capacity relative to the
	// parent.
	FractalCapacityFactor = 0.8

	// FractalSpacing is the per-axis spatial offset step of the spawn
	// layout.
	FractalSpacing = 0.1

	// MaxFractalDepth bounds the 2^depth spawn count; beyond it the
	// operation is rejected before any mutation.
	MaxFractalDepth = 16

	// SpatialEpsilon is the minimum distance used in gradient flow,
	// preventing division by zero for coincident positions.
	SpatialEpsilon = 0.01

	// SpatialFlowGain converts gradient strength into moved energy.
	SpatialFlowGain = 0.05

	// SpatialGradientGain scales the per-axis gradient update.
	SpatialGradientGain = 0.1

	// SpatialEntropyFactor converts moved energy into entropy increase.
	SpatialEntropyFactor = 0.01
)
