// Package oplog stores the pending deferred-second-application closures for
// an active/standby write session.
//
// This is a direct generalization of the map-entry oplog that drove the
// original evmap package: instead of a closed set of entry kinds (insert,
// delete, clear) tied to map[K]V, the log now stores opaque one-shot
// callables so it can back any value type T, not just maps.
package oplog

// Log stores an ordered slice of deferred mutations that can be replayed
// against a table of type T. This data structure is not thread-safe; callers
// must provide their own synchronization (the writer core guards it with its
// write-session serialization).
type Log[T any] struct {
	entries []func(*T)
}

// Push appends a deferred mutation to the log.
func (l *Log[T]) Push(f func(*T)) {
	l.entries = append(l.entries, f)
}

// Apply replays every entry in the log against t, in submission order.
func (l *Log[T]) Apply(t *T) {
	for _, f := range l.entries {
		f(t)
	}
}

// Drain replays every entry in the log against t and then empties the log.
// This is the operation the writer performs at the start of a write session.
func (l *Log[T]) Drain(t *T) {
	l.Apply(t)
	l.Clear()
}

// Clear empties the log without applying it.
func (l *Log[T]) Clear() {
	l.entries = nil
}

// Len returns the current number of pending entries.
func (l *Log[T]) Len() int {
	return len(l.entries)
}

// New creates an empty Log for the given table type.
func New[T any]() *Log[T] {
	return &Log[T]{}
}
