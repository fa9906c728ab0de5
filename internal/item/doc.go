// Package item groups a tagged value with the position or key and the
// owning object it was read from, and provides the reference-counted
// handle through which result sets share items.
//
// An Item is immutable once built. The only in-place mutations are those
// of a contained change projection, document or sync state, and they are
// reachable only through a Handle that holds the sole reference.
//
// Handles count references for lifetime, not for synchronization; they
// are not safe for concurrent use.
package item
