// Package am holds the document engine's native types as seen by the
// binding layer.
//
// The merge algorithm, storage and the sync protocol state machine live in
// the engine itself. This package defines only what the binding consumes:
// actor identifiers, content-addressed changes, object identifiers, scalar
// and object values, documents, and sync artifacts.
//
// Key constraints:
//   - ActorID, ObjID and ChangeHash are comparable with ==
//   - Change identity is its hash, never its pointer
//   - A Doc is exclusively owned; mutators are not safe for concurrent use
package am
