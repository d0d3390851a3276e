// Package field holds the mutable field entities and the registry that
// owns them.
//
// A Field is pure data plus invariant predicates: energy components,
// entropy, coherence, phase, frequency, spatial position and capacity.
// All behavior (the ten operations) lives in the ops package; all
// invariant enforcement lives in the conserve package and the interpreter
// facade.
//
// The Registry owns every entity exclusively by unique name. It is an
// explicit per-session object passed to the interpreter - never a
// process-wide singleton. Entanglement is a symmetric name-keyed
// back-reference; writes and clears always update both sides together.
package field
