package oplog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	log := New[[]int]()
	var table []int

	// Each of these tests piggyback on each other and cannot be run separately,
	// mirroring the teacher's original subtest structure.
	t.Run("Push+Apply", func(t *testing.T) {
		log.Push(func(s *[]int) { *s = append(*s, 1) })
		log.Push(func(s *[]int) { *s = append(*s, 2) })
		log.Apply(&table)

		assert.Equal(t, []int{1, 2}, table)
		assert.Equal(t, 2, log.Len())
	})
	t.Run("Clear", func(t *testing.T) {
		log.Clear()
		assert.Equal(t, 0, log.Len())

		// Applying after Clear must be a no-op.
		log.Apply(&table)
		assert.Equal(t, []int{1, 2}, table)
	})
	t.Run("Drain", func(t *testing.T) {
		log.Push(func(s *[]int) { *s = (*s)[:0] })
		log.Push(func(s *[]int) { *s = append(*s, 9) })
		log.Drain(&table)

		assert.Equal(t, []int{9}, table)
		assert.Equal(t, 0, log.Len())
	})
}
