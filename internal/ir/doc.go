// Package ir defines the typed operation requests produced by the parser
// and consumed by the interpreter.
//
// The request model is a CLOSED tagged variant: exactly ten operation kinds
// exist, and the interpreter dispatches over the tag with an exhaustive
// switch. There is no open-ended type inspection and no extension point -
// the notation is a fixed set of ten shapes, not an extensible language.
//
// Requests are ephemeral: constructed by the parser, consumed once by the
// interpreter facade, never persisted. Durable state lives in the field
// registry and, optionally, the command journal.
package ir
