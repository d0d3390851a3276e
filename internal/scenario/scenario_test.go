package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadProgram_Valid verifies that a well-formed program file loads
// with all sections populated.
func TestLoadProgram_Valid(t *testing.T) {
	prog, err := LoadProgram(filepath.Join("testdata", "programs", "exchange-pair.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "exchange-pair", prog.Name)
	require.Len(t, prog.Fields, 2)
	assert.Equal(t, "sun", prog.Fields[0].Name)
	assert.Equal(t, 200.0, prog.Fields[0].Energy)
	require.Len(t, prog.Steps, 1)
	assert.Len(t, prog.Assertions, 4)
}

// TestLoadProgram_UnknownKey verifies that strict decoding rejects
// misspelled keys instead of silently dropping them.
func TestLoadProgram_UnknownKey(t *testing.T) {
	path := writeProgram(t, `
name: typo
description: a misspelled key must fail loudly
fields:
  - name: a
    energy: 10.0
stepz:
  - command: "∂decay(a)"
`)
	_, err := LoadProgram(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stepz")
}

// TestLoadProgram_MissingName verifies the required-name validation.
func TestLoadProgram_MissingName(t *testing.T) {
	path := writeProgram(t, `
description: nameless
fields:
  - name: a
    energy: 10.0
`)
	_, err := LoadProgram(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

// TestLoadProgram_BadAssertionType verifies that assertion validation
// rejects types outside the closed set.
func TestLoadProgram_BadAssertionType(t *testing.T) {
	path := writeProgram(t, `
name: bad-assert
description: unknown assertion type
fields:
  - name: a
    energy: 10.0
assertions:
  - type: field_mass
    field: a
`)
	_, err := LoadProgram(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assertion type")
}

// TestRun_AllPrograms loads every program under testdata/programs, runs
// it and requires every assertion to hold.
func TestRun_AllPrograms(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "programs", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			prog, err := LoadProgram(path)
			require.NoError(t, err)

			result, err := Run(prog)
			require.NoError(t, err)
			assert.Empty(t, result.Failures)
			assert.True(t, result.Passed())
		})
	}
}

// TestRun_ExpectedErrorMismatch verifies that a step succeeding where a
// failure was declared aborts the run.
func TestRun_ExpectedErrorMismatch(t *testing.T) {
	prog := &Program{
		Name:        "mismatch",
		Description: "step succeeds but declared a failure",
		Fields:      []FieldSetup{{Name: "a", Energy: 100}},
		Steps: []Step{
			{Command: "∂decay(a, 0.1)", ExpectError: "insufficient_energy"},
		},
	}
	_, err := Run(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected insufficient_energy, got ok")
}

// TestRun_AssertionFailureCollected verifies that failed assertions are
// collected in the result instead of aborting the run.
func TestRun_AssertionFailureCollected(t *testing.T) {
	prog := &Program{
		Name:        "wrong-expectation",
		Description: "deliberately wrong energy assertion",
		Fields:      []FieldSetup{{Name: "a", Energy: 100}},
		Steps:       []Step{{Command: "∂decay(a, 0.1)"}},
		Assertions: []Assertion{
			{Type: AssertFieldEnergy, Field: "a", Value: 100.0},
		},
	}
	result, err := Run(prog)
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.False(t, result.Passed())
	assert.Contains(t, result.Failures[0], "a energy")
}

// goldenPrograms are the programs with hand-verified golden traces.
// ecosystem is excluded: it is covered by assertions, not by exact
// numeric output.
var goldenPrograms = []string{
	"exchange-pair",
	"regenerate-cycles",
	"decay-cycles",
	"entangle-resonance",
	"fractal-spawn",
	"phase-ladder",
	"rejections",
	"spatial-flow",
	"network-triad",
}

// TestGolden runs each golden program and compares the rendered result
// against its golden file.
func TestGolden(t *testing.T) {
	for _, name := range goldenPrograms {
		name := name
		t.Run(name, func(t *testing.T) {
			prog, err := LoadProgram(filepath.Join("testdata", "programs", name+".yaml"))
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, prog))
		})
	}
}

// writeProgram writes an inline program document to a temp file.
func writeProgram(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
