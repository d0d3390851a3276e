package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/cyclic/internal/ir"
)

// TestParse_Exchange covers the two-field exchange shape including the
// optional ² and F decorations.
func TestParse_Exchange(t *testing.T) {
	for _, cmd := range []string{
		"∇F(sun↔planet)|∂E/∂t=0",
		"∇(sun↔planet)|∂E/∂t=0",
		"∇²F(sun↔planet)|∂E/∂t=0",
	} {
		req, err := Parse(cmd)
		require.NoError(t, err, cmd)
		assert.Equal(t, ir.OpExchange, req.Kind)
		assert.Equal(t, []string{"sun", "planet"}, req.Fields)
	}
}

// TestParse_ExchangeArity verifies that the two-field form rejects any
// other operand count.
func TestParse_ExchangeArity(t *testing.T) {
	_, err := Parse("∇F(sun)|∂E/∂t=0")
	require.Error(t, err)

	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Reason, "exactly 2 fields")
}

// TestParse_Regenerate covers the regenerative cycle shape and its
// numeric parameter.
func TestParse_Regenerate(t *testing.T) {
	req, err := Parse("∮regenerate(plant, 20.5)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpRegenerate, req.Kind)
	assert.Equal(t, []string{"plant"}, req.Fields)
	assert.Equal(t, 20.5, req.Energy)

	_, err = Parse("∮regenerate(plant, lots)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

// TestParse_Decay covers both the explicit-rate and default-rate forms.
func TestParse_Decay(t *testing.T) {
	req, err := Parse("∂decay(star, 0.1)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpDecay, req.Kind)
	assert.Equal(t, 0.1, req.Rate)

	req, err = Parse("∂decay(star)")
	require.NoError(t, err)
	assert.Equal(t, DefaultDecayRate, req.Rate)
}

// TestParse_Symbiosis covers the mutual-benefit shape.
func TestParse_Symbiosis(t *testing.T) {
	req, err := Parse("∇∇(fungus⇄algae)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpSymbiosis, req.Kind)
	assert.Equal(t, []string{"fungus", "algae"}, req.Fields)
}

// TestParse_Entangle covers the entanglement shape with and without
// spaces around operands.
func TestParse_Entangle(t *testing.T) {
	req, err := Parse("⊗(particle_A, particle_B)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpEntangle, req.Kind)
	assert.Equal(t, []string{"particle_A", "particle_B"}, req.Fields)
}

// TestParse_Resonance covers the frequency-matching shape.
func TestParse_Resonance(t *testing.T) {
	req, err := Parse("~(osc_1 ≈ osc_2)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpResonance, req.Kind)
	assert.Equal(t, []string{"osc_1", "osc_2"}, req.Fields)
}

// TestParse_Phase covers the phase transition shape and target parsing.
func TestParse_Phase(t *testing.T) {
	req, err := Parse("∂phase(water, plasma)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpPhase, req.Kind)
	assert.Equal(t, ir.PhasePlasma, req.TargetPhase)

	_, err = Parse("∂phase(water, slush)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown phase state")
}

// TestParse_Fractal covers the fractal shape, its iteration count and
// depth validation.
func TestParse_Fractal(t *testing.T) {
	req, err := Parse("∮^3(seed, 2)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpFractal, req.Kind)
	assert.Equal(t, []string{"seed"}, req.Fields)
	assert.Equal(t, 2, req.Depth)

	_, err = Parse("∮^0(seed, 2)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")

	_, err = Parse("∮^1(seed, 0)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ">= 1")
}

// TestParse_Spatial covers the spatial gradient shape.
func TestParse_Spatial(t *testing.T) {
	req, err := Parse("∇spatial(hot_spot, cold_spot)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpSpatial, req.Kind)
	assert.Equal(t, []string{"hot_spot", "cold_spot"}, req.Fields)
}

// TestParse_Network covers the multi-field form, which must win over
// the two-field exchange despite the shared gradient operator.
func TestParse_Network(t *testing.T) {
	req, err := Parse("∇³F(a↔b↔c↔d)|∂E/∂t=0")
	require.NoError(t, err)
	assert.Equal(t, ir.OpNetwork, req.Kind)
	assert.Equal(t, []string{"a", "b", "c", "d"}, req.Fields)

	// Constraint suffix is optional on the network form.
	req, err = Parse("∇³F(a↔b↔c)")
	require.NoError(t, err)
	assert.Equal(t, ir.OpNetwork, req.Kind)

	_, err = Parse("∇³F(a↔b)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 fields")
}

// TestParse_Whitespace verifies operand trimming and surrounding-space
// tolerance.
func TestParse_Whitespace(t *testing.T) {
	req, err := Parse("  ⊗( alpha , beta )  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, req.Fields)
}

// TestParse_Unrecognized verifies the catch-all syntax error.
func TestParse_Unrecognized(t *testing.T) {
	for _, cmd := range []string{
		"",
		"   ",
		"do_something(a)",
		"∇F(a↔b)", // exchange without its constraint suffix
		"⊗(a)",
	} {
		_, err := Parse(cmd)
		require.Error(t, err, "command %q", cmd)

		var serr *SyntaxError
		assert.ErrorAs(t, err, &serr, "command %q", cmd)
	}
}

// TestParse_CommandNormalized verifies the request carries the trimmed,
// NFC-normalized command text.
func TestParse_CommandNormalized(t *testing.T) {
	req, err := Parse("  ∂decay(star)  ")
	require.NoError(t, err)
	assert.Equal(t, "∂decay(star)", req.Command)
}
