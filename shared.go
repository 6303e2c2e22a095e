package activestandby

import (
	"sync"
	"sync/atomic"

	"github.com/clarkmcc/go-activestandby/internal/oplog"
	"github.com/clarkmcc/go-activestandby/internal/sharedtable"
)

// Shared is the shared-variant entry point: a single object, safe to share
// by reference across any number of goroutines. Reads take a brief shared
// lock on the active cell; writes are fully serialized and, unlike the
// handle variant, can be poisoned by a panicking write session.
type Shared[T any] struct {
	pair *sharedtable.Pair[T]
	log  *oplog.Log[T]

	writeMu sync.Mutex

	// poisoned becomes permanently true the first time a WriteGuard is
	// closed while a panic is unwinding through it. Once true, every future
	// Write call fails; reads keep succeeding but report the poison.
	poisoned atomic.Bool
}

// SharedFromIdentical builds a Shared from two copies the caller has
// already verified are equal.
func SharedFromIdentical[T any](t1, t2 T, _ ...SharedOption) *Shared[T] {
	return &Shared[T]{
		pair: sharedtable.FromIdentical(t1, t2),
		log:  oplog.New[T](),
	}
}

// NewShared builds a Shared by cloning t into the two starting tables.
func NewShared[T cloner[T]](t T, opts ...SharedOption) *Shared[T] {
	return SharedFromIdentical[T](t, t.Clone(), opts...)
}

// DefaultShared builds a Shared from T's zero value, cloned into both
// tables.
func DefaultShared[T cloner[T]](opts ...SharedOption) *Shared[T] {
	var zero T
	return NewShared[T](zero, opts...)
}

// Read takes a brief shared lock on the active table. It returns a non-nil
// guard even when the writer is poisoned — poisoning never blocks or
// invalidates reads, it only surfaces as a non-nil error so the caller can
// decide whether to keep trusting the last-committed value.
func (s *Shared[T]) Read() (*SharedReadGuard[T], error) {
	g := s.pair.Read()
	if s.poisoned.Load() {
		return &SharedReadGuard[T]{guard: g}, &PoisonError[T]{value: g.Value()}
	}
	return &SharedReadGuard[T]{guard: g}, nil
}

// Write opens a new write session. It serializes against any other
// concurrent Write call and blocks until the standby cell's readers have
// drained. If a previous session poisoned this Shared, Write fails
// immediately with a PoisonError and no guard.
//
// Callers must close the returned guard with `defer guard.Close()`
// immediately after a successful Write call: Close's panic-poisoning
// behavior only works when it runs as the directly-deferred function
// during a panicking unwind.
func (s *Shared[T]) Write() (*SharedWriteGuard[T], error) {
	s.writeMu.Lock()

	if s.poisoned.Load() {
		s.writeMu.Unlock()
		rg := s.pair.Read()
		defer rg.Close()
		return nil, &PoisonError[T]{value: rg.Value()}
	}

	wg := s.pair.StandbyWrite()
	s.log.Drain(wg.Value())

	return &SharedWriteGuard[T]{shared: s, guard: wg}, nil
}

// SharedWriteGuard is the shared-variant write session.
type SharedWriteGuard[T any] struct {
	shared *Shared[T]
	guard  *sharedtable.WriteGuard[T]
	closed bool
}

// Value returns the standby copy this session is mutating.
func (g *SharedWriteGuard[T]) Value() *T {
	g.assertOpen()
	return g.value()
}

func (g *SharedWriteGuard[T]) value() *T {
	return g.guard.Value()
}

func (g *SharedWriteGuard[T]) pushReplay(f func(*T)) {
	g.assertOpen()
	g.shared.log.Push(f)
}

func (g *SharedWriteGuard[T]) assertOpen() {
	if g.closed {
		panic("activestandby: use of write guard after Close")
	}
}

// Close publishes this session's mutations, unless a panic is in flight,
// in which case it poisons the Shared instead and skips the swap — the
// table reverts to its last-committed, pre-session state.
//
// See Write's doc comment: Close must run as a directly-deferred call
// (`defer guard.Close()`) for the panic-poisoning behavior to trigger.
func (g *SharedWriteGuard[T]) Close() {
	if r := recover(); r != nil {
		g.closePoisoned()
		panic(r)
	}
	g.closeNormal()
}

func (g *SharedWriteGuard[T]) closeNormal() {
	if g.closed {
		panic("activestandby: write guard closed twice")
	}
	g.closed = true

	// Release the standby lock before swapping roles: if we swapped first,
	// an incoming reader could observe the new active designation and then
	// block trying to take a shared lock on a cell we still hold
	// exclusively, producing a spurious wait.
	g.guard.Unlock()
	g.shared.pair.SwapRoles()
	g.shared.writeMu.Unlock()
}

func (g *SharedWriteGuard[T]) closePoisoned() {
	if g.closed {
		return
	}
	g.closed = true

	g.shared.poisoned.Store(true)
	g.guard.Unlock()
	g.shared.writeMu.Unlock()
}
