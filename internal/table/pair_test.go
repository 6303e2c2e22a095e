package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairFromIdentical(t *testing.T) {
	p := FromIdentical([]int{1, 2}, []int{1, 2})
	assert.Equal(t, []int{1, 2}, *p.ActiveSnapshot())
	assert.Equal(t, []int{1, 2}, *p.StandbyMut())
	assert.NotSame(t, p.ActiveSnapshot(), p.StandbyMut())
}

func TestPairSwapRoles(t *testing.T) {
	p := FromIdentical(1, 2)
	active, standby := p.ActiveSnapshot(), p.StandbyMut()

	p.SwapRoles()

	assert.Same(t, standby, p.ActiveSnapshot())
	assert.Same(t, active, p.StandbyMut())
}

func TestPairSwapRoleTwiceReturnsToOriginal(t *testing.T) {
	p := FromIdentical(1, 2)
	active, standby := p.ActiveSnapshot(), p.StandbyMut()

	p.SwapRoles()
	p.SwapRoles()

	assert.Same(t, active, p.ActiveSnapshot())
	assert.Same(t, standby, p.StandbyMut())
}
