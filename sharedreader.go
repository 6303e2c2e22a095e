package activestandby

import "github.com/clarkmcc/go-activestandby/internal/sharedtable"

// SharedReadGuard is a scoped shared view of the active table obtained
// from a Shared. Unlike the handle variant's ReadGuard, obtaining one can
// briefly block (on a writer mid-swap), but it never requires its own
// epoch bookkeeping — the underlying RWMutex supplies the drain.
type SharedReadGuard[T any] struct {
	guard *sharedtable.ReadGuard[T]
}

// Value returns the guarded snapshot of the active table.
func (g *SharedReadGuard[T]) Value() *T {
	return g.guard.Value()
}

// Close releases the shared lock. Must be called exactly once.
func (g *SharedReadGuard[T]) Close() {
	g.guard.Close()
}
