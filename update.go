package activestandby

// Update is the two-phase operation interface callers implement to mutate
// the tables. ApplyFirst runs synchronously against the standby copy and
// may return a value to the caller. ApplySecond runs once later, against
// the copy that was active at ApplyFirst time, once it becomes the new
// standby. Implementations must guarantee that ApplyFirst and ApplySecond
// leave their respective tables in identical states — that contract is the
// caller's responsibility; this package cannot check it.
type Update[T, R any] interface {
	ApplyFirst(t *T) R
	ApplySecond(t *T)
}

// UpdateFunc adapts a single closure into an Update by invoking it twice:
// once now against the standby copy, once later on replay. The closure
// must be referentially transparent modulo T for both applications to
// compose to the same net change.
type UpdateFunc[T, R any] func(t *T) R

// ApplyFirst implements Update.
func (f UpdateFunc[T, R]) ApplyFirst(t *T) R { return f(t) }

// ApplySecond implements Update.
func (f UpdateFunc[T, R]) ApplySecond(t *T) { f(t) }

// Apply runs op against wg's standby copy and queues its second phase for
// replay against the next write session's standby table. It returns
// whatever ApplyFirst returned.
//
// Go generics don't let a method introduce a type parameter beyond its
// receiver's, so the spec's `WriteGuard::update_tables<R>(...)` becomes
// this free function. R usually has to be given explicitly when op's
// concrete type doesn't otherwise pin it down, e.g.
// Apply[RouteTable, int](wg, insertRoute).
func Apply[T, R any](wg *WriteGuard[T], op Update[T, R]) R {
	res := op.ApplyFirst(wg.value())
	wg.pushReplay(func(t *T) { op.ApplySecond(t) })
	return res
}

// ApplyFunc is the closure-convenience form of Apply for the handle
// variant. Unlike Apply, both T and R are inferred from f, e.g.
// ApplyFunc(wg, func(s *[]int) int { ... }).
func ApplyFunc[T, R any](wg *WriteGuard[T], f func(*T) R) R {
	return Apply[T, R](wg, UpdateFunc[T, R](f))
}

// ApplyShared is Apply's shared-variant counterpart.
func ApplyShared[T, R any](wg *SharedWriteGuard[T], op Update[T, R]) R {
	res := op.ApplyFirst(wg.value())
	wg.pushReplay(func(t *T) { op.ApplySecond(t) })
	return res
}

// ApplySharedFunc is ApplyFunc's shared-variant counterpart.
func ApplySharedFunc[T, R any](wg *SharedWriteGuard[T], f func(*T) R) R {
	return ApplyShared[T, R](wg, UpdateFunc[T, R](f))
}
