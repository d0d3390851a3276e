package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a program and compares its rendered result
// against a golden file stored in testdata/golden/{program.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/scenario -update
//
// Golden files are the source of truth for the numeric behavior of the
// operation set; a diff here means the physics changed.
func RunWithGolden(t *testing.T, prog *Program) error {
	t.Helper()

	result, err := Run(prog)
	if err != nil {
		return err
	}

	AssertGolden(t, prog.Name, result)
	return nil
}

// AssertGolden compares an already-computed result against the golden
// file named after it.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Render(result))
}
