// Package ops implements the ten field operation handlers.
//
// Each handler receives resolved field entities plus its numeric
// parameters, mutates them in place, and returns the invariant class the
// conservation checker must verify afterwards. Handlers never touch the
// registry except where the operation's semantics require it (symmetric
// entanglement writes, which go through the registry helper).
//
// Handlers do not clamp coherence or normalize phase angles - the
// interpreter facade applies that normalization unconditionally after every
// operation, independent of invariant class.
//
// INVARIANT TAGGING:
// Three operations inject energy by design and are tagged ClassNone
// rather than silently failing a conservation check: regeneration (the
// input is an external injection), resonance (frequency-matched
// amplification) and fractal generation (spawned fields are new capacity,
// not a redistribution - total registry energy increases by the parent's
// energy). The entropy check still applies to all of them.
package ops
