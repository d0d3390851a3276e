package interp

import (
	"errors"

	"github.com/fieldworks/cyclic/internal/conserve"
	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ops"
	"github.com/fieldworks/cyclic/internal/parser"
)

// ErrorKind names used in journal rows, JSON output and logs.
// Every failure surfaced by the interpreter maps to exactly one kind.
const (
	KindOK                    = "ok"
	KindSyntax                = "syntax_error"
	KindUnknownField          = "unknown_field"
	KindDuplicateName         = "duplicate_name"
	KindInvalidState          = "invalid_state"
	KindInsufficientEnergy    = "insufficient_energy"
	KindConservationViolation = "conservation_violation"
	KindEntropyViolation      = "entropy_violation"
	KindInternal              = "internal"
)

// ErrorKind classifies an error returned by Execute or CreateField.
// Returns KindOK for nil and KindInternal for anything unrecognized.
func ErrorKind(err error) string {
	if err == nil {
		return KindOK
	}

	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return KindSyntax
	}
	var unknownErr *field.UnknownFieldError
	if errors.As(err, &unknownErr) {
		return KindUnknownField
	}
	var dupErr *field.DuplicateNameError
	if errors.As(err, &dupErr) {
		return KindDuplicateName
	}
	var stateErr *ops.InvalidStateError
	if errors.As(err, &stateErr) {
		return KindInvalidState
	}
	var energyErr *ops.InsufficientEnergyError
	if errors.As(err, &energyErr) {
		return KindInsufficientEnergy
	}
	var consErr *conserve.ConservationViolationError
	if errors.As(err, &consErr) {
		return KindConservationViolation
	}
	var entropyErr *conserve.EntropyViolationError
	if errors.As(err, &entropyErr) {
		return KindEntropyViolation
	}
	return KindInternal
}

// IsViolation reports whether the error is a post-mutation invariant
// violation (the registry was rolled back before it was surfaced).
func IsViolation(err error) bool {
	kind := ErrorKind(err)
	return kind == KindConservationViolation || kind == KindEntropyViolation
}
