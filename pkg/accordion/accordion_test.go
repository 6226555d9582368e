package accordion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleKeepsOthersOpen(t *testing.T) {
	t.Parallel()

	a := New()
	assert.True(t, a.Toggle(0))
	assert.True(t, a.Toggle(2))

	assert.True(t, a.IsOpen(0))
	assert.True(t, a.IsOpen(2))
	assert.Equal(t, []int{0, 2}, a.OpenIndices())

	assert.False(t, a.Toggle(0))
	assert.False(t, a.IsOpen(0))
	assert.True(t, a.IsOpen(2))
}

func TestOnOpenFiresOnlyWhenExpanding(t *testing.T) {
	t.Parallel()

	var opened []int
	a := New()
	a.OnOpen = func(i int) { opened = append(opened, i) }

	a.Toggle(1)
	a.Toggle(1)
	a.Toggle(1)
	assert.Equal(t, []int{1, 1}, opened)
}
