package epoch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlabRegisterDeregister(t *testing.T) {
	s := NewSlab()
	id, counter := s.Register()
	assert.Equal(t, 1, s.Len())

	counter.Store(1)
	e, ok := s.Load(id)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), e)

	s.Deregister(id)
	assert.Equal(t, 0, s.Len())
	_, ok = s.Load(id)
	assert.False(t, ok)

	// Deregistering twice is a no-op, not an error.
	s.Deregister(id)
}

func TestSlabEach(t *testing.T) {
	s := NewSlab()
	id1, c1 := s.Register()
	id2, c2 := s.Register()
	c1.Store(1)
	c2.Store(2)

	seen := map[int]uint64{}
	s.Each(func(id int, epoch uint64) { seen[id] = epoch })

	assert.Equal(t, map[int]uint64{id1: 1, id2: 2}, seen)
}

func TestSlabIdsAreUniquePerRegistration(t *testing.T) {
	s := NewSlab()
	id1, _ := s.Register()
	s.Deregister(id1)
	id2, _ := s.Register()

	assert.NotEqual(t, id1, id2)
}
