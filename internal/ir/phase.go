package ir

import "fmt"

// PhaseState is one of the five ordered matter-like states.
// The ordinal distance between two states defines the transition cost
// and the entropy change of a phase transition.
type PhaseState int

const (
	PhaseCrystalline PhaseState = iota
	PhaseNormal
	PhaseLiquid
	PhaseGas
	PhasePlasma
)

var phaseNames = [...]string{
	PhaseCrystalline: "crystalline",
	PhaseNormal:      "normal",
	PhaseLiquid:      "liquid",
	PhaseGas:         "gas",
	PhasePlasma:      "plasma",
}

// String returns the lowercase state name used in command notation.
func (p PhaseState) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Ordinal returns the state's position in the phase ordering.
func (p PhaseState) Ordinal() int { return int(p) }

// ParsePhase maps a notation token to its PhaseState.
// Returns an error for tokens outside the closed set.
func ParsePhase(s string) (PhaseState, error) {
	for i, name := range phaseNames {
		if s == name {
			return PhaseState(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase state %q", s)
}
