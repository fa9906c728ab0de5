// Package tagged provides the tagged value that carries engine results
// across the foreign-call boundary, and the type-tag and conversion
// framework every outer layer delegates to.
//
// A Value holds exactly one payload: an actor id, a change, a change hash,
// a document, a sync have, message or state, or a generic engine value.
// There is no empty Value; absence is a nil Value and is reported as Void.
//
// Key constraints:
//   - ValType codes are powers of two and never renumbered
//   - Conversions never panic and never allocate on failure
//   - Lazy projections (ActorIDView, ChangeView) are single-writer,
//     read-after-initialize; Values must not be shared across goroutines
//     before their projections are built
package tagged
