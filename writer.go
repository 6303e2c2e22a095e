package activestandby

import (
	"runtime"
	"sync"

	"github.com/clarkmcc/go-activestandby/internal/epoch"
	"github.com/clarkmcc/go-activestandby/internal/oplog"
	"github.com/clarkmcc/go-activestandby/internal/table"
)

// cloner is satisfied by any T that can produce an independent copy of
// itself. New and Default use it to build the two starting tables the spec
// requires ("T must be duplicable at construction").
type cloner[T any] interface {
	Clone() T
}

// Writer is the handle-variant entry point: it owns the table pair, the
// pending-operations log, and the reader-epoch bookkeeping, and is the only
// way to obtain a WriteGuard. Only one WriteGuard may be open at a time;
// Write blocks until the previous one has been closed, the same way a
// mutex would.
//
// Writer is safe to use from multiple goroutines (Write serializes them),
// but only one goroutine should be calling Write at a time in the sense
// that a long-held WriteGuard will stall every other writer.
type Writer[T any] struct {
	table   *table.Pair[T]
	log     *oplog.Log[T]
	readers *epoch.Slab

	writeMu sync.Mutex

	// blocking records, per reader id, the epoch that reader had
	// immediately after the most recent swap. Only touched while writeMu
	// is held (i.e. during Write/Close), so it needs no lock of its own.
	blocking map[int]uint64
}

// FromIdentical builds a Writer from two copies the caller has already
// verified are equal. Use this when T doesn't implement Clone, or when
// duplication is cheaper done by the caller (e.g. reading the same config
// file twice).
func FromIdentical[T any](t1, t2 T, opts ...WriterOption) *Writer[T] {
	o := resolveWriterOptions(opts)
	return &Writer[T]{
		table:    table.FromIdentical(t1, t2),
		log:      oplog.New[T](),
		readers:  epoch.NewSlabWithCapacity(o.ReaderCapacityHint),
		blocking: make(map[int]uint64),
	}
}

// New builds a Writer by cloning t into the two starting tables.
func New[T cloner[T]](t T, opts ...WriterOption) *Writer[T] {
	return FromIdentical[T](t, t.Clone(), opts...)
}

// Default builds a Writer from T's zero value, cloned into both tables.
// This is the Go reading of the spec's "default() when T has a default":
// Go types always have a zero value, so the only extra requirement here is
// Clone, same as New.
func Default[T cloner[T]](opts ...WriterOption) *Writer[T] {
	var zero T
	return New[T](zero, opts...)
}

// awaitStandbyFree blocks, yielding the processor between passes rather
// than busy-spinning, until every reader recorded in blocking has either
// disappeared or advanced its epoch past the value recorded right after
// the last swap.
func (w *Writer[T]) awaitStandbyFree() {
	for len(w.blocking) > 0 {
		present := make(map[int]uint64, w.readers.Len())
		w.readers.Each(func(id int, epoch uint64) { present[id] = epoch })

		for id, firstEpochAfterSwap := range w.blocking {
			currentEpoch, ok := present[id]
			switch {
			case !ok:
				// Reader has been dropped.
				delete(w.blocking, id)
			case currentEpoch > firstEpochAfterSwap:
				// Reader has exited (and possibly re-entered) since the swap.
				delete(w.blocking, id)
			case firstEpochAfterSwap%2 == 0:
				// Recorded epoch wasn't actually mid-read; nothing to wait for.
				delete(w.blocking, id)
			}
		}

		if len(w.blocking) > 0 {
			runtime.Gosched()
		}
	}
}

// Write opens a new write session. It blocks until the standby table has
// no readers left pointing at it, replays every operation queued by the
// previous session against that standby table, and returns a guard the
// caller uses to apply new mutations. The returned guard's Close method
// must be called (typically via defer) to publish the session's writes.
func (w *Writer[T]) Write() *WriteGuard[T] {
	w.writeMu.Lock()

	w.awaitStandbyFree()

	// Ordering: the drain loop above must be fully observed before we hand
	// out the standby pointer for replay. Go's sync/atomic operations are
	// sequentially consistent per the Go memory model, so the epoch loads in
	// awaitStandbyFree and the standby pointer load below already provide
	// that ordering without a separate fence primitive.
	standby := w.table.StandbyMut()
	w.log.Drain(standby)

	return &WriteGuard[T]{w: w}
}

// WriteGuard is the handle-variant write session. Dereference it with
// Value to inspect the standby table's uncommitted state; mutate it with
// the package-level Apply/ApplyFunc functions. Closing the guard publishes
// every mutation applied during the session atomically.
type WriteGuard[T any] struct {
	w      *Writer[T]
	closed bool
}

// Value returns the standby copy this session is mutating.
func (g *WriteGuard[T]) Value() *T {
	g.assertOpen()
	return g.value()
}

func (g *WriteGuard[T]) value() *T {
	return g.w.table.StandbyMut()
}

func (g *WriteGuard[T]) pushReplay(f func(*T)) {
	g.assertOpen()
	g.w.log.Push(f)
}

func (g *WriteGuard[T]) assertOpen() {
	if g.closed {
		panic("activestandby: use of write guard after Close")
	}
}

// Close publishes this session's mutations: it swaps the active and
// standby tables, then records the epoch of every currently-reading reader
// so the next Write call knows which readers it must wait to drain. Close
// must be called exactly once per guard.
func (g *WriteGuard[T]) Close() {
	if g.closed {
		panic("activestandby: write guard closed twice")
	}
	g.closed = true

	if len(g.w.blocking) != 0 {
		panic("activestandby: blocking readers map not empty at guard close — protocol violation")
	}

	g.w.table.SwapRoles()

	// Sequentially consistent per the Go memory model: this read of each
	// reader's epoch is guaranteed to observe the swap above.
	g.w.readers.Each(func(id int, epoch uint64) {
		if epoch%2 != 0 {
			g.w.blocking[id] = epoch
		}
	})

	g.w.writeMu.Unlock()
}

// NewReader creates a new independent reader handle over this writer's
// table pair.
func (w *Writer[T]) NewReader() *Reader[T] {
	id, counter := w.readers.Register()
	return &Reader[T]{slab: w.readers, id: id, counter: counter, table: w.table}
}
