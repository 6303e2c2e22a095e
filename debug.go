package activestandby

import "fmt"

// These Stringer/GoStringer implementations are debug-only projections of
// internal counters (queued-op count, reader count, current values). They
// are human-readable, not a parseable or stable wire format — same spirit
// as the teacher package exposing its internal maps only through test
// assertions, generalized here into an actual Debug surface since the spec
// calls for one explicitly.

// String reports the number of queued replay operations and live readers.
func (w *Writer[T]) String() string {
	return fmt.Sprintf("Writer{ops_to_replay: %d, readers: %d}", w.log.Len(), w.readers.Len())
}

// GoString implements fmt.GoStringer.
func (w *Writer[T]) GoString() string {
	return w.String()
}

// String reports the queued-op count and the standby table's current
// value.
func (g *WriteGuard[T]) String() string {
	return fmt.Sprintf("WriteGuard{ops_to_replay: %d, standby: %v}", g.w.log.Len(), *g.w.table.StandbyMut())
}

// String reports the active table's current value.
func (g *ReadGuard[T]) String() string {
	return fmt.Sprintf("ReadGuard{active: %v}", *g.value)
}

// String reports the number of queued replay operations and whether the
// writer is currently poisoned.
func (s *Shared[T]) String() string {
	return fmt.Sprintf("Shared{ops_to_replay: %d, poisoned: %t}", s.log.Len(), s.poisoned.Load())
}

// GoString implements fmt.GoStringer.
func (s *Shared[T]) GoString() string {
	return s.String()
}

// String reports the standby table's current value.
func (g *SharedWriteGuard[T]) String() string {
	return fmt.Sprintf("SharedWriteGuard{standby: %v}", *g.guard.Value())
}

// String reports the active table's current value.
func (g *SharedReadGuard[T]) String() string {
	return fmt.Sprintf("SharedReadGuard{active: %v}", *g.guard.Value())
}
