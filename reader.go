package activestandby

import (
	"sync/atomic"

	"github.com/clarkmcc/go-activestandby/internal/epoch"
	"github.com/clarkmcc/go-activestandby/internal/table"
)

// noCopy makes `go vet`'s copylocks check flag accidental copies of a
// Reader, the same trick sync.WaitGroup plays on itself. A Reader isn't
// actually a lock, but the reason for the restriction is the same: each
// goroutine must own a distinct epoch slot, so a byte-copy (as opposed to
// a Clone call, which allocates a fresh slot) would corrupt the odd/even
// "reading" bit for whichever copy loses the race.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Reader is a handle-variant reader handle. Create one with
// Writer.NewReader or by cloning an existing Reader. A Reader is not safe
// to share between goroutines by reference — each goroutine that wants to
// read should hold its own handle, obtained by calling Clone. Cloning is
// cheap (it only takes the epoch slab's mutex briefly).
//
// Calling Read a second time on the same Reader before the first
// ReadGuard has been closed is a programming error and panics; reads are
// explicitly not reentrant on a single handle.
type Reader[T any] struct {
	noCopy  noCopy
	slab    *epoch.Slab
	id      int
	counter *atomic.Uint64
	table   *table.Pair[T]
}

// Clone creates a new, independent Reader over the same table pair. The
// original and the clone can be used concurrently from different
// goroutines; dropping (Close-ing) one does not affect the other.
func (r *Reader[T]) Clone() *Reader[T] {
	id, counter := r.slab.Register()
	return &Reader[T]{slab: r.slab, id: id, counter: counter, table: r.table}
}

// Close releases this reader's epoch slot. It is optional — failing to
// call it leaks only a small map entry, never the underlying table — but
// calling it promptly lets the writer stop bothering to sample this
// reader's epoch.
func (r *Reader[T]) Close() {
	r.slab.Deregister(r.id)
}

// Read obtains a wait-free, scoped view of the active table. No locks are
// taken; the call is one atomic load and one atomic store of the reader's
// epoch plus an atomic load of the active pointer, and the guard's Close adds
// one more epoch load and store. The returned ReadGuard must be closed (typically
// via defer) to signal the writer that this reader is done.
func (r *Reader[T]) Read() *ReadGuard[T] {
	oldEpoch := r.counter.Load()
	if oldEpoch%2 != 0 {
		panic("activestandby: Read called while a read guard from this reader is still open — reads are not reentrant on a single handle")
	}

	// Incrementing before dereferencing is what makes this safe: once the
	// writer observes an odd epoch here, it knows not to touch the table
	// this guard is about to point at until the epoch advances again.
	r.counter.Store(oldEpoch + 1)

	active := r.table.ActiveSnapshot()
	return &ReadGuard[T]{counter: r.counter, value: active}
}

// ReadGuard is a scoped, wait-free view of the active table obtained from a
// handle-variant Reader.
type ReadGuard[T any] struct {
	counter *atomic.Uint64
	value   *T
	closed  bool
}

// Value returns the guarded snapshot of the active table.
func (g *ReadGuard[T]) Value() *T {
	return g.value
}

// Close signals that this read is complete. Must be called exactly once.
func (g *ReadGuard[T]) Close() {
	if g.closed {
		panic("activestandby: read guard closed twice")
	}
	g.closed = true

	old := g.counter.Load()
	if old%2 != 1 {
		panic("activestandby: read guard epoch corrupted — protocol violation")
	}
	g.counter.Store(old + 1)
}
