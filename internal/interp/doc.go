// Package interp implements the interpreter facade that composes the
// parser, registry, operation handlers and conservation checker.
//
// ARCHITECTURE:
//
// Strictly Sequential Execution:
// Every command is processed to completion before the next is accepted.
// There is no queue, no background work and no concurrency - the registry
// is mutated exclusively by the currently executing command. Given the
// same command sequence and registry state, every run produces
// bit-identical numeric results.
//
// Command Processing States:
//
//	Idle → Parsing → Resolving → Snapshotting → Applying → Checking
//	     → {Committed | RolledBack} → Idle
//
// Any failure in Parsing or Resolving aborts before any mutation occurs.
// Handler precondition failures (invalid state, insufficient energy) also
// occur before mutation. A failure in Checking triggers rollback: the
// touched fields are restored to their Snapshotting-phase values and no
// spawned entity is registered.
//
// Spawned fields are inserted only at commit time, so a rejected fractal
// generation leaves the registry untouched.
//
// Every committed or rejected command is stamped with a monotonic logical
// sequence number. Wall-clock time never orders anything.
package interp
