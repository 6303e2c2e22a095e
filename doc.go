/*
Copyright (C) 2020 Print Tracker, LLC - All Rights Reserved

Unauthorized copying of this file, via any medium is strictly prohibited
as this source code is proprietary and confidential. Dissemination of this
information or reproduction of this material is strictly forbidden unless
prior written permission is obtained from Print Tracker, LLC.
*/

// Package activestandby implements a reader-writer synchronization
// primitive in which readers never block, never wait, and never contend
// with the writer, at the cost of keeping two copies of the protected
// value and publishing writes only when a write session closes.
//
// Two variants are exported:
//
//   - Writer[T]/Reader[T] (the "handle" variant): reads are wait-free,
//     backed by per-reader epoch counters. Each goroutine that wants to
//     read should hold its own Reader, obtained via Writer.NewReader or
//     Reader.Clone.
//   - Shared[T] (the "shared" variant): a single value safe to share by
//     reference across any number of goroutines. Reads take a brief shared
//     lock instead of participating in epoch bookkeeping, and writes can be
//     poisoned by a panicking write session, matching the semantics of the
//     standard library's sync.RWMutex/sync.Mutex poisoning story.
//
// Both variants keep the writer's uncommitted mutations invisible to
// readers until the write session's guard is closed:
//
//	w := activestandby.FromIdentical[[]int](nil, nil)
//	reader := w.NewReader()
//
//	func() {
//	    wg := w.Write()
//	    defer wg.Close()
//	    activestandby.ApplyFunc(wg, func(s *[]int) []int {
//	        *s = append(*s, 1, 2, 3)
//	        return nil
//	    })
//	}()
//
//	rg := reader.Read()
//	defer rg.Close()
//	_ = *rg.Value() // []int{1, 2, 3}
//
// Mutations are expressed as two-phase Update values (or, for convenience,
// a plain closure applied twice via ApplyFunc) rather than direct edits to
// a returned reference, because the same logical change has to be replayed
// against both copies of T to keep them in sync — see Update's doc comment.
package activestandby
