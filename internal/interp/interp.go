package interp

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/fieldworks/cyclic/internal/conserve"
	"github.com/fieldworks/cyclic/internal/field"
	"github.com/fieldworks/cyclic/internal/ir"
	"github.com/fieldworks/cyclic/internal/ops"
	"github.com/fieldworks/cyclic/internal/parser"
)

// Recorder receives every processed command for durable journaling.
// Implemented by journal.Journal (production) and test fakes.
type Recorder interface {
	// RecordCreate journals a successful field creation.
	RecordCreate(seq int64, name string, energy, frequency float64, position [3]float64) error

	// RecordExecute journals an execute attempt with its outcome kind
	// (KindOK or an error kind).
	RecordExecute(seq int64, command, status string) error
}

// Interpreter is the facade over the registry, parser, handlers and
// checker. One instance per session; the registry is owned exclusively
// and torn down with the interpreter. Not safe for concurrent use - the
// execution model is strictly sequential by design.
type Interpreter struct {
	registry *field.Registry
	clock    *Clock
	recorder Recorder
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRecorder attaches a command journal.
func WithRecorder(r Recorder) Option {
	return func(in *Interpreter) {
		in.recorder = r
	}
}

// WithClock supplies a pre-positioned clock, used by journal replay to
// resume from the recorded sequence.
func WithClock(c *Clock) Option {
	return func(in *Interpreter) {
		in.clock = c
	}
}

// New creates an interpreter session with an empty registry.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		registry: field.NewRegistry(),
		clock:    NewClock(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// CreateField registers a new field with the given initial energy (all
// kinetic), optional frequency (default 1.0) and position. Fails with
// DuplicateNameError for taken names and InvalidStateError for a negative
// energy or non-positive frequency.
func (in *Interpreter) CreateField(name string, energy, frequency float64, position [3]float64) error {
	if name == "" {
		return &ops.InvalidStateError{Field: name, Reason: "field name must be non-empty"}
	}
	if energy < 0 {
		return &ops.InvalidStateError{Field: name, Reason: "initial energy must be non-negative"}
	}
	if frequency < 0 {
		return &ops.InvalidStateError{Field: name, Reason: "frequency must be non-negative (zero selects the default)"}
	}

	_, err := in.registry.Create(name, energy, field.CreateSpec{
		Frequency: frequency,
		Position:  field.Vec3{X: position[0], Y: position[1], Z: position[2]},
	})
	if err != nil {
		return err
	}

	seq := in.clock.Next()
	slog.Debug("field created", "name", name, "energy", energy, "seq", seq)

	if in.recorder != nil {
		if recErr := in.recorder.RecordCreate(seq, name, energy, frequency, position); recErr != nil {
			return fmt.Errorf("journal create %q: %w", name, recErr)
		}
	}
	return nil
}

// GetField returns a read-only snapshot of the named field.
func (in *Interpreter) GetField(name string) (field.Snapshot, error) {
	f, err := in.registry.Resolve(name)
	if err != nil {
		return field.Snapshot{}, err
	}
	return f.Snapshot(), nil
}

// ListFields returns snapshots of all registered fields, sorted by name.
func (in *Interpreter) ListFields() []field.Snapshot {
	all := in.registry.All()
	out := make([]field.Snapshot, len(all))
	for i, f := range all {
		out[i] = f.Snapshot()
	}
	return out
}

// TotalEnergy sums the derived total energy over all fields.
func (in *Interpreter) TotalEnergy() float64 {
	var sum float64
	for _, f := range in.registry.All() {
		sum += f.TotalEnergy()
	}
	return sum
}

// TotalEntropy sums entropy over all fields.
func (in *Interpreter) TotalEntropy() float64 {
	var sum float64
	for _, f := range in.registry.All() {
		sum += f.Entropy
	}
	return sum
}

// Execute processes one command through the full state machine and
// either commits its mutation or leaves the registry exactly as it was.
//
// Failure ordering guarantees:
//   - Parsing/Resolving failures (syntax, unknown field, duplicate spawn
//     name) abort before any snapshot or mutation.
//   - Handler precondition failures (invalid state, insufficient energy)
//     abort before any mutation.
//   - Checking failures roll the touched fields back to their snapshots
//     and register no spawned entity.
func (in *Interpreter) Execute(command string) (*OperationResult, error) {
	result, err := in.execute(command)

	if in.recorder != nil {
		seq := in.clock.Next()
		cmd := command
		if result != nil {
			cmd = result.Command
			result.Seq = seq
		}
		if recErr := in.recorder.RecordExecute(seq, cmd, ErrorKind(err)); recErr != nil {
			return result, fmt.Errorf("journal command: %w", recErr)
		}
	} else if result != nil {
		result.Seq = in.clock.Next()
	}

	return result, err
}

func (in *Interpreter) execute(command string) (*OperationResult, error) {
	// Parsing
	req, err := parser.Parse(command)
	if err != nil {
		slog.Debug("parse rejected", "command", command, "error", err)
		return nil, err
	}

	// Resolving
	touched, err := in.resolve(req)
	if err != nil {
		slog.Debug("resolve rejected", "command", req.Command, "error", err)
		return nil, err
	}

	// Multi-operand operations act on distinct fields; a command naming
	// the same field twice has no sensible semantics.
	if len(touched) != len(req.Fields) {
		return nil, &ops.InvalidStateError{
			Field:  req.Fields[0],
			Reason: "operands must name distinct fields",
		}
	}

	// Fractal spawn names must be free before anything mutates.
	if req.Kind == ir.OpFractal {
		if err := in.checkSpawnNames(req); err != nil {
			return nil, err
		}
	}

	// Snapshotting
	before := make([]*field.Field, len(touched))
	for i, f := range touched {
		before[i] = f.Clone()
	}

	// Applying
	class, spawned, err := in.apply(req, touched)
	if err != nil {
		// Handler preconditions fail before mutating; nothing to roll back.
		slog.Debug("apply rejected", "command", req.Command, "error", err)
		return nil, err
	}

	for _, f := range touched {
		f.Normalize()
	}
	for _, f := range spawned {
		f.Normalize()
	}

	// Checking
	if err := conserve.Check(class, before, touched); err != nil {
		for i, f := range touched {
			f.Restore(before[i])
		}
		slog.Warn("operation rolled back",
			"command", req.Command,
			"kind", req.Kind.String(),
			"class", class.String(),
			"error", err,
		)
		return nil, err
	}

	// Committed
	for _, f := range touched {
		f.Age++
	}
	for _, f := range spawned {
		if err := in.registry.Insert(f); err != nil {
			// Unreachable: spawn names were pre-checked while the
			// registry was untouched.
			return nil, err
		}
	}

	result := &OperationResult{
		Command:   req.Command,
		Kind:      req.Kind,
		KindName:  req.Kind.String(),
		Class:     class,
		ClassName: class.String(),
		Mutated:   snapshotsOf(touched),
		Created:   snapshotsOf(spawned),
	}

	slog.Info("operation committed",
		"command", req.Command,
		"kind", req.Kind.String(),
		"class", class.String(),
		"mutated", len(result.Mutated),
		"created", len(result.Created),
	)
	return result, nil
}

// resolve looks up every operand, deduplicating repeated names so the
// snapshot/restore and conservation sums see each entity once.
func (in *Interpreter) resolve(req *ir.Request) ([]*field.Field, error) {
	seen := make(map[string]bool, len(req.Fields))
	touched := make([]*field.Field, 0, len(req.Fields))
	for _, name := range req.Fields {
		if seen[name] {
			continue
		}
		seen[name] = true
		f, err := in.registry.Resolve(name)
		if err != nil {
			return nil, err
		}
		touched = append(touched, f)
	}
	return touched, nil
}

// checkSpawnNames rejects a fractal command whose deterministic spawn
// names would collide with existing fields.
func (in *Interpreter) checkSpawnNames(req *ir.Request) error {
	if req.Depth > ops.MaxFractalDepth {
		// The handler would reject this too; checking here keeps the
		// 2^depth name loop bounded.
		return &ops.InvalidStateError{
			Field:  req.Fields[0],
			Reason: fmt.Sprintf("fractal depth %d exceeds limit %d", req.Depth, ops.MaxFractalDepth),
		}
	}
	count := 1 << req.Depth
	for i := 0; i < count; i++ {
		name := ops.SpawnName(req.Fields[0], req.Depth, i)
		if in.registry.Has(name) {
			return &field.DuplicateNameError{Name: name}
		}
	}
	return nil
}

// apply dispatches the request to its handler. The switch is exhaustive
// over the closed set of ten kinds.
func (in *Interpreter) apply(req *ir.Request, touched []*field.Field) (ir.InvariantClass, []*field.Field, error) {
	switch req.Kind {
	case ir.OpExchange:
		return ops.Exchange(touched[0], touched[1]), nil, nil

	case ir.OpRegenerate:
		return ops.Regenerate(touched[0], req.Energy), nil, nil

	case ir.OpDecay:
		class, err := ops.Decay(touched[0], req.Rate)
		return class, nil, err

	case ir.OpSymbiosis:
		return ops.Symbiosis(touched[0], touched[1]), nil, nil

	case ir.OpEntangle:
		class, err := ops.Entangle(in.registry, touched[0], touched[1])
		return class, nil, err

	case ir.OpResonance:
		return ops.Resonate(touched[0], touched[1]), nil, nil

	case ir.OpPhase:
		class, err := ops.Transition(touched[0], req.TargetPhase)
		return class, nil, err

	case ir.OpFractal:
		spawned, class, err := ops.FractalSpawn(touched[0], req.Depth)
		return class, spawned, err

	case ir.OpSpatial:
		return ops.SpatialGradient(touched[0], touched[1]), nil, nil

	case ir.OpNetwork:
		return ops.Network(touched), nil, nil

	default:
		return 0, nil, fmt.Errorf("unhandled operation kind %d", req.Kind)
	}
}

func snapshotsOf(fields []*field.Field) []field.Snapshot {
	if len(fields) == 0 {
		return nil
	}
	out := make([]field.Snapshot, len(fields))
	for i, f := range fields {
		out[i] = f.Snapshot()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
