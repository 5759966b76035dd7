// Package control implements the property-sync model shared by every control.
//
// A control declares typed attributes on a [Store]. Each attribute is an
// [Attr] that remembers its current value and whether it changed since the
// last flush. Application code mutates attributes through typed setters and
// then calls Flush explicitly; nothing is sent automatically.
//
// # Dirty tracking
//
// Writes that do not change the value are suppressed: setting an attribute to
// the value it already holds leaves the dirty set untouched. Declaring an
// attribute with a default marks it dirty, so the first flush after
// construction carries every default. The dirty set is cleared only by Flush.
//
// # Derived attributes
//
// Attributes registered with [Base.Derive] are recomputed on every flush and
// always emitted, regardless of dirty state.
//
// # Wire format
//
// Flush returns an [Update]: attribute name to encoded string (JSON text for
// JSON attributes, the raw string form otherwise), the names of attributes
// that were emitted before and are now absent, and at most one child update
// tagged with the "content" slot.
//
// # Concurrency
//
// Controls are not safe for concurrent use. All mutation and flushing is
// expected to happen on one goroutine; callers serialize their own access.
package control
