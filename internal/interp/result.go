package interp

import (
	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
)

// OperationResult reports a committed operation: which fields it mutated
// and their post-state snapshots, plus any fields it created.
type OperationResult struct {
	// Command is the normalized command text.
	Command string `json:"command"`

	// Kind is the recognized operation.
	Kind ir.OpKind `json:"-"`

	// KindName is Kind's display name, kept for serialized output.
	KindName string `json:"kind"`

	// Class is the invariant class the checker verified.
	Class ir.InvariantClass `json:"-"`

	// ClassName is Class's display name, kept for serialized output.
	ClassName string `json:"invariant_class"`

	// Seq is the logical clock stamp of the commit.
	Seq int64 `json:"seq"`

	// Mutated holds post-state snapshots of the touched fields, sorted
	// by name.
	Mutated []field.Snapshot `json:"mutated"`

	// Created holds snapshots of fields spawned by the operation
	// (fractal generation only), sorted by name.
	Created []field.Snapshot `json:"created,omitempty"`
}
