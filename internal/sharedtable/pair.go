// Package sharedtable implements the dual-RWMutex active/standby table pair
// used by the shared variant of the active/standby primitive.
//
// Unlike internal/table (the lock-free handle-variant pair, which relies on
// per-reader epoch tracking), this pair needs no epoch bookkeeping at all:
// the standby cell's own RWMutex supplies the reader-drain. Grounded on
// erikfastermann/readerwriter's current[T] (an embedded sync.RWMutex guarding
// one of the two cells) and generalized to the two-cell active/standby shape.
package sharedtable

import "sync"

// Pair holds two RWMutex-guarded cells and a designation of which one is
// active. The designation itself lives behind a third RWMutex rather
// than an atomic bool, so that a reader can never observe "cell 0 is active"
// and then be preempted while a writer flips the designation and grabs cell
// 0's exclusive lock out from under it — see Read for the full race.
type Pair[T any] struct {
	designationMu sync.RWMutex
	table0Active  bool

	table0 sync.RWMutex
	cell0  T
	table1 sync.RWMutex
	cell1  T
}

// FromIdentical builds a Pair from two already-equal copies of T.
func FromIdentical[T any](t1, t2 T) *Pair[T] {
	return &Pair[T]{table0Active: true, cell0: t1, cell1: t2}
}

// ReadGuard is a scoped shared view of the active cell.
type ReadGuard[T any] struct {
	mu    *sync.RWMutex
	value *T
}

// Value returns the guarded active value.
func (g *ReadGuard[T]) Value() *T { return g.value }

// Close releases the underlying shared lock. Safe to call exactly once.
func (g *ReadGuard[T]) Close() { g.mu.RUnlock() }

// Read takes a shared lock on whichever cell is currently designated active.
//
// Holding designationMu.RLock() across the designation check and the
// cell-level RLock acquisition closes the race where a writer flips
// table0Active and grabs cell0's exclusive lock between this reader's load
// of the designation and its RLock call: without the outer lock, the reader
// could observe "cell0 active", get preempted, and then block on a writer
// that already holds cell0 exclusively for the *next* session.
func (p *Pair[T]) Read() *ReadGuard[T] {
	p.designationMu.RLock()
	defer p.designationMu.RUnlock()

	if p.table0Active {
		p.table0.RLock()
		return &ReadGuard[T]{mu: &p.table0, value: &p.cell0}
	}
	p.table1.RLock()
	return &ReadGuard[T]{mu: &p.table1, value: &p.cell1}
}

// WriteGuard grants exclusive access to the standby cell.
type WriteGuard[T any] struct {
	pair  *Pair[T]
	mu    *sync.RWMutex
	value *T
}

// Value returns the guarded standby value.
func (g *WriteGuard[T]) Value() *T { return g.value }

// StandbyWrite takes the exclusive lock of whichever cell is currently
// standby. This blocks until every existing ReadGuard on that cell has been
// released — this wait *is* the drain step for the shared variant; no epoch
// bookkeeping is needed.
func (p *Pair[T]) StandbyWrite() *WriteGuard[T] {
	p.designationMu.RLock()
	table0Active := p.table0Active
	p.designationMu.RUnlock()

	if table0Active {
		p.table1.Lock()
		return &WriteGuard[T]{pair: p, mu: &p.table1, value: &p.cell1}
	}
	p.table0.Lock()
	return &WriteGuard[T]{pair: p, mu: &p.table0, value: &p.cell0}
}

// Unlock releases the exclusive lock on the standby cell without swapping
// roles. Callers that need to swap must call Unlock before SwapRoles (see
// SwapRoles' doc comment for why that ordering matters).
func (g *WriteGuard[T]) Unlock() { g.mu.Unlock() }

// SwapRoles flips which cell is designated active. Must be called only
// after the WriteGuard's exclusive lock has already been released —
// otherwise an incoming reader could observe the new active designation and
// then block trying to take a shared lock on a cell the writer still holds
// exclusively, producing a spurious wait the spec explicitly calls out as
// avoidable.
func (p *Pair[T]) SwapRoles() {
	p.designationMu.Lock()
	p.table0Active = !p.table0Active
	p.designationMu.Unlock()
}
