// Package epoch implements the reader-epoch slab shared between the
// handle-variant writer and its readers.
//
// Each live reader owns one slot: an atomic counter whose parity signals
// whether that reader is currently inside a read (odd) or idle (even). The
// slab itself is a plain mutex-guarded map keyed by an incrementing id,
// taken only when a reader is created or destroyed, or when the writer
// drains/samples — never on the read hot path. This mirrors the
// free-list-backed registries used for the same purpose in
// jwkohnen/lrmap (readHandlers map + epoch uint64) and the Rust
// slab::Slab<Arc<AtomicUsize>> this package replaces.
package epoch

import (
	"sync"
	"sync/atomic"
)

// Slab is a mutex-guarded registry of reader epoch counters.
type Slab struct {
	mu     sync.Mutex
	next   int
	counts map[int]*atomic.Uint64
}

// NewSlab returns an empty epoch slab.
func NewSlab() *Slab {
	return NewSlabWithCapacity(0)
}

// NewSlabWithCapacity returns an empty epoch slab whose backing map is
// preallocated for the given number of readers.
func NewSlabWithCapacity(capacity int) *Slab {
	if capacity < 0 {
		capacity = 0
	}
	return &Slab{counts: make(map[int]*atomic.Uint64, capacity)}
}

// Register allocates a new epoch counter (initialized to 0, i.e. "idle")
// and returns its id and the counter itself.
func (s *Slab) Register() (id int, counter *atomic.Uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = s.next
	s.next++
	counter = &atomic.Uint64{}
	s.counts[id] = counter
	return id, counter
}

// Deregister removes a reader's epoch slot. Safe to call more than once;
// the second call is a no-op.
func (s *Slab) Deregister(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, id)
}

// Each calls fn once per currently-registered (id, epoch) pair. fn must not
// call back into the Slab.
func (s *Slab) Each(fn func(id int, epoch uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, counter := range s.counts {
		fn(id, counter.Load())
	}
}

// Load returns the current epoch for id and whether that reader is still
// registered.
func (s *Slab) Load(id int) (epoch uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counter, ok := s.counts[id]
	if !ok {
		return 0, false
	}
	return counter.Load(), true
}

// Len returns the number of currently-registered readers.
func (s *Slab) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counts)
}
