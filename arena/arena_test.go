package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaInsertGet(t *testing.T) {
	var a Arena[int]
	h := a.Insert(42)

	v, ok := a.Get(h)
	require.True(t, ok)
	assert.Equal(t, 42, *v)
	assert.Equal(t, 1, a.Len())
}

func TestArenaRemoveInvalidatesHandle(t *testing.T) {
	var a Arena[string]
	h := a.Insert("hello")
	require.True(t, a.Remove(h))

	_, ok := a.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Contains(h))
}

func TestArenaRemoveTwiceFails(t *testing.T) {
	var a Arena[int]
	h := a.Insert(1)
	require.True(t, a.Remove(h))
	assert.False(t, a.Remove(h))
}

func TestArenaStaleHandleAfterSlotReuse(t *testing.T) {
	var a Arena[int]
	h1 := a.Insert(1)
	a.Remove(h1)
	h2 := a.Insert(2)

	_, ok := a.Get(h1)
	assert.False(t, ok, "stale handle must not alias the slot's new occupant")

	v2, ok := a.Get(h2)
	require.True(t, ok)
	assert.Equal(t, 2, *v2)
}

func TestArenaGetDisjointMutRejectsEqualHandles(t *testing.T) {
	var a Arena[int]
	h := a.Insert(1)

	_, ok := a.GetDisjointMut(h, h)
	assert.False(t, ok)
}

func TestArenaGetDisjointMutRejectsStaleHandle(t *testing.T) {
	var a Arena[int]
	h1 := a.Insert(1)
	h2 := a.Insert(2)
	a.Remove(h1)

	_, ok := a.GetDisjointMut(h1, h2)
	assert.False(t, ok)
}

func TestArenaGetDisjointMutReturnsIndependentPointers(t *testing.T) {
	var a Arena[int]
	h1 := a.Insert(10)
	h2 := a.Insert(20)

	ptrs, ok := a.GetDisjointMut(h1, h2)
	require.True(t, ok)
	*ptrs[0] += 1
	*ptrs[1] += 1

	v1, _ := a.Get(h1)
	v2, _ := a.Get(h2)
	assert.Equal(t, 11, *v1)
	assert.Equal(t, 21, *v2)
}

func TestArenaValuesAndHandlesAgree(t *testing.T) {
	var a Arena[int]
	a.Insert(1)
	a.Insert(2)
	a.Insert(3)

	assert.Len(t, a.Values(), 3)
	assert.Len(t, a.Handles(), 3)
}
