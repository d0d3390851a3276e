package scenario

import (
	"fmt"
	"strings"

	"github.com/fieldworks/cyclic/internal/field"
)

// Render produces the canonical text form of a run result, used for
// golden-file comparison. The format is deterministic: fixed six-decimal
// formatting, fields sorted by name (ListFields already sorts), optional
// attributes printed only when set so simple programs stay readable.
func Render(r *Result) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "program: %s\n", r.Program)

	b.WriteString("steps:\n")
	for _, step := range r.Trace {
		fmt.Fprintf(&b, "  %d. %s -> %s\n", step.Index, step.Command, step.Status)
	}

	b.WriteString("fields:\n")
	for _, snap := range r.Fields {
		renderField(&b, &snap)
	}

	fmt.Fprintf(&b, "totals: energy=%.6f entropy=%.6f\n", r.TotalEnergy, r.TotalEntropy)

	for _, failure := range r.Failures {
		fmt.Fprintf(&b, "FAIL: %s\n", failure)
	}
	return []byte(b.String())
}

func renderField(b *strings.Builder, snap *field.Snapshot) {
	fmt.Fprintf(b,
		"  %s: energy=%.6f kinetic=%.6f potential=%.6f entropy=%.6f coherence=%.6f angle=%.6f capacity=%.6f age=%d state=%s freq=%.6f",
		snap.Name, snap.TotalEnergy, snap.Kinetic, snap.Potential,
		snap.Entropy, snap.Coherence, snap.PhaseAngle, snap.Capacity,
		snap.Age, snap.PhaseName, snap.Frequency,
	)
	if snap.EntangledWith != "" {
		fmt.Fprintf(b, " entangled=%s", snap.EntangledWith)
	}
	if snap.FractalDepth > 0 {
		fmt.Fprintf(b, " depth=%d", snap.FractalDepth)
	}
	if snap.Position != ([3]float64{}) {
		fmt.Fprintf(b, " pos=(%.6f,%.6f,%.6f)", snap.Position[0], snap.Position[1], snap.Position[2])
	}
	if snap.Gradient != ([3]float64{}) {
		fmt.Fprintf(b, " grad=(%.6f,%.6f,%.6f)", snap.Gradient[0], snap.Gradient[1], snap.Gradient[2])
	}
	b.WriteString("\n")
}
