package field

import (
	"fmt"
	"sort"

	"github.com/fieldworks/cyclic/internal/ir"
)

// DuplicateNameError is returned by Create when the name is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("field %q already exists", e.Name)
}

// UnknownFieldError is returned by Resolve for absent names.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// Registry owns all field entities by unique name.
//
// The registry is the only shared state in the interpreter, and it is
// mutated exclusively by the currently executing command. It is
// constructed once per interpreter session and torn down with it.
type Registry struct {
	fields map[string]*Field
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]*Field)}
}

// CreateSpec carries the optional attributes of a new field.
type CreateSpec struct {
	Frequency float64 // defaults to 1.0 when zero
	Position  Vec3
}

// Create inserts a new field with the given initial energy, entirely
// kinetic, zero potential. Fails with DuplicateNameError if the name is
// taken.
func (r *Registry) Create(name string, energy float64, spec CreateSpec) (*Field, error) {
	if _, ok := r.fields[name]; ok {
		return nil, &DuplicateNameError{Name: name}
	}
	freq := spec.Frequency
	if freq == 0 {
		freq = 1.0
	}
	f := &Field{
		Name:      name,
		Kinetic:   energy,
		Entropy:   InitialEntropy,
		Capacity:  1.0,
		Phase:     ir.PhaseNormal,
		Frequency: freq,
		Position:  spec.Position,
	}
	r.fields[name] = f
	return f, nil
}

// Insert adds an externally constructed field (fractal spawns).
// Fails with DuplicateNameError if the name is taken.
func (r *Registry) Insert(f *Field) error {
	if _, ok := r.fields[f.Name]; ok {
		return &DuplicateNameError{Name: f.Name}
	}
	r.fields[f.Name] = f
	return nil
}

// Remove deletes a field by name, clearing any entanglement back-reference
// on the partner so the symmetric relation never dangles. Used only by
// rollback of spawn inserts; no operation deletes fields.
func (r *Registry) Remove(name string) {
	f, ok := r.fields[name]
	if !ok {
		return
	}
	if f.EntangledWith != "" {
		if partner, ok := r.fields[f.EntangledWith]; ok {
			partner.EntangledWith = ""
		}
	}
	delete(r.fields, name)
}

// Resolve returns the field for name or UnknownFieldError.
func (r *Registry) Resolve(name string) (*Field, error) {
	f, ok := r.fields[name]
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	return f, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// All returns the registered fields sorted by name. The sort gives a
// stable order within one operation's execution, which the multi-field
// operations rely on for determinism.
func (r *Registry) All() []*Field {
	out := make([]*Field, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Entangle records the symmetric entanglement relation between a and b.
// Both sides are written together; the relation never exists one-sided.
func (r *Registry) Entangle(a, b *Field) {
	a.EntangledWith = b.Name
	b.EntangledWith = a.Name
}

// ClearEntanglement removes the relation from both sides.
func (r *Registry) ClearEntanglement(f *Field) {
	if f.EntangledWith == "" {
		return
	}
	if partner, ok := r.fields[f.EntangledWith]; ok {
		partner.EntangledWith = ""
	}
	f.EntangledWith = ""
}
