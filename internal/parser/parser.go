// Package parser converts command strings into typed operation requests.
//
// The notation is a fixed closed set of ten shapes, so the parser is a
// small ordered list of independent matchers tried in a fixed precedence
// order - not a general grammar. Each matcher owns exactly one operator
// shape; the leading operator token plus structural cues (↔, ⇄, ≈, ^n, ³,
// or a named sub-command) make the shapes mutually exclusive.
//
// The parser is purely syntactic: it never touches the field registry.
// Operand names are literal tokens between delimiters; numeric parameters
// are parsed positionally and a non-numeric token is a syntax error.
//
// Input is NFC-normalized before matching so that visually identical
// operator sequences compare equal regardless of the source encoding.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/fieldworks/cyclic/internal/ir"
)

// SyntaxError reports a command that matches none of the ten shapes, or
// one whose parameter tokens are malformed.
type SyntaxError struct {
	Command string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %q: %s", e.Command, e.Reason)
}

// The ten shape matchers. Anchored; operand tokens are trimmed after
// capture. Order of declaration here is documentation only - precedence
// is the order in Parse.
var (
	reEntangle   = regexp.MustCompile(`^⊗\(([^,()]+),([^,()]+)\)$`)
	reResonance  = regexp.MustCompile(`^~\(([^()≈]+)≈([^()≈]+)\)$`)
	rePhase      = regexp.MustCompile(`^∂phase\(([^,()]+),([^,()]+)\)$`)
	reDecay      = regexp.MustCompile(`^∂decay\(([^,()]+)(?:,([^,()]+))?\)$`)
	reFractal    = regexp.MustCompile(`^∮\^([0-9]+)\(([^,()]+),([^,()]+)\)$`)
	reRegenerate = regexp.MustCompile(`^∮regenerate\(([^,()]+),([^,()]+)\)$`)
	reSpatial    = regexp.MustCompile(`^∇spatial\(([^,()]+),([^,()]+)\)$`)
	reSymbiosis  = regexp.MustCompile(`^∇∇\(([^()⇄]+)⇄([^()⇄]+)\)$`)
	reNetwork    = regexp.MustCompile(`^∇³F?\(([^()|]+)\)(?:\|(.+))?$`)
	reExchange   = regexp.MustCompile(`^∇²?F?\(([^()|]+)\)\|(.+)$`)
)

// DefaultDecayRate applies when ∂decay omits its rate parameter.
const DefaultDecayRate = 0.05

// Parse matches command against the ten shapes and returns exactly one
// request, or a SyntaxError. Matchers run in fixed precedence order:
// entangle, resonance, phase, decay, fractal, regenerate, spatial,
// symbiosis, network, exchange. The multi-field ∇³ form must precede the
// two-field ∇F form because both open with the gradient operator.
func Parse(command string) (*ir.Request, error) {
	cmd := strings.TrimSpace(norm.NFC.String(command))
	if cmd == "" {
		return nil, &SyntaxError{Command: command, Reason: "empty command"}
	}

	if m := reEntangle.FindStringSubmatch(cmd); m != nil {
		a, b, err := twoNames(cmd, m[1], m[2])
		if err != nil {
			return nil, err
		}
		return &ir.Request{Kind: ir.OpEntangle, Fields: []string{a, b}, Command: cmd}, nil
	}

	if m := reResonance.FindStringSubmatch(cmd); m != nil {
		a, b, err := twoNames(cmd, m[1], m[2])
		if err != nil {
			return nil, err
		}
		return &ir.Request{Kind: ir.OpResonance, Fields: []string{a, b}, Command: cmd}, nil
	}

	if m := rePhase.FindStringSubmatch(cmd); m != nil {
		name := strings.TrimSpace(m[1])
		if name == "" {
			return nil, &SyntaxError{Command: cmd, Reason: "empty field name"}
		}
		target, err := ir.ParsePhase(strings.TrimSpace(m[2]))
		if err != nil {
			return nil, &SyntaxError{Command: cmd, Reason: err.Error()}
		}
		return &ir.Request{Kind: ir.OpPhase, Fields: []string{name}, TargetPhase: target, Command: cmd}, nil
	}

	if m := reDecay.FindStringSubmatch(cmd); m != nil {
		name := strings.TrimSpace(m[1])
		if name == "" {
			return nil, &SyntaxError{Command: cmd, Reason: "empty field name"}
		}
		rate := DefaultDecayRate
		if m[2] != "" {
			var err error
			rate, err = parseNumber(cmd, m[2], "decay rate")
			if err != nil {
				return nil, err
			}
		}
		return &ir.Request{Kind: ir.OpDecay, Fields: []string{name}, Rate: rate, Command: cmd}, nil
	}

	if m := reFractal.FindStringSubmatch(cmd); m != nil {
		// The ^n marker is part of the shape but carries no semantics:
		// spawn count is determined solely by the depth parameter.
		iterations, err := strconv.Atoi(m[1])
		if err != nil || iterations < 1 {
			return nil, &SyntaxError{Command: cmd, Reason: "fractal iteration count must be a positive integer"}
		}
		name := strings.TrimSpace(m[2])
		if name == "" {
			return nil, &SyntaxError{Command: cmd, Reason: "empty field name"}
		}
		depth, err := strconv.Atoi(strings.TrimSpace(m[3]))
		if err != nil || depth < 1 {
			return nil, &SyntaxError{Command: cmd, Reason: "fractal depth must be an integer >= 1"}
		}
		return &ir.Request{Kind: ir.OpFractal, Fields: []string{name}, Depth: depth, Command: cmd}, nil
	}

	if m := reRegenerate.FindStringSubmatch(cmd); m != nil {
		name := strings.TrimSpace(m[1])
		if name == "" {
			return nil, &SyntaxError{Command: cmd, Reason: "empty field name"}
		}
		energy, err := parseNumber(cmd, m[2], "energy input")
		if err != nil {
			return nil, err
		}
		return &ir.Request{Kind: ir.OpRegenerate, Fields: []string{name}, Energy: energy, Command: cmd}, nil
	}

	if m := reSpatial.FindStringSubmatch(cmd); m != nil {
		a, b, err := twoNames(cmd, m[1], m[2])
		if err != nil {
			return nil, err
		}
		return &ir.Request{Kind: ir.OpSpatial, Fields: []string{a, b}, Command: cmd}, nil
	}

	if m := reSymbiosis.FindStringSubmatch(cmd); m != nil {
		a, b, err := twoNames(cmd, m[1], m[2])
		if err != nil {
			return nil, err
		}
		return &ir.Request{Kind: ir.OpSymbiosis, Fields: []string{a, b}, Command: cmd}, nil
	}

	if m := reNetwork.FindStringSubmatch(cmd); m != nil {
		names, err := splitNames(cmd, m[1])
		if err != nil {
			return nil, err
		}
		if len(names) < 3 {
			return nil, &SyntaxError{Command: cmd, Reason: "network requires at least 3 fields"}
		}
		return &ir.Request{Kind: ir.OpNetwork, Fields: names, Command: cmd}, nil
	}

	if m := reExchange.FindStringSubmatch(cmd); m != nil {
		names, err := splitNames(cmd, m[1])
		if err != nil {
			return nil, err
		}
		if len(names) != 2 {
			return nil, &SyntaxError{Command: cmd, Reason: "exchange requires exactly 2 fields joined by ↔"}
		}
		return &ir.Request{Kind: ir.OpExchange, Fields: names, Command: cmd}, nil
	}

	return nil, &SyntaxError{Command: cmd, Reason: "command matches no recognized operation shape"}
}

// twoNames trims two captured operand tokens and rejects empty names.
func twoNames(cmd, rawA, rawB string) (string, string, error) {
	a := strings.TrimSpace(rawA)
	b := strings.TrimSpace(rawB)
	if a == "" || b == "" {
		return "", "", &SyntaxError{Command: cmd, Reason: "empty field name"}
	}
	return a, b, nil
}

// splitNames splits an interaction list on ↔ and trims each token.
func splitNames(cmd, raw string) ([]string, error) {
	parts := strings.Split(raw, "↔")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, &SyntaxError{Command: cmd, Reason: "empty field name in interaction list"}
		}
		names = append(names, name)
	}
	return names, nil
}

// parseNumber parses a positional numeric parameter.
func parseNumber(cmd, raw, what string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &SyntaxError{Command: cmd, Reason: fmt.Sprintf("%s is not numeric: %q", what, strings.TrimSpace(raw))}
	}
	return v, nil
}
