package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitySetStaging(t *testing.T) {
	s := NewEntitySet[string](false)
	s.replace([]string{"a", "b"})

	s.Add("c")
	s.Add("a")
	s.Remove("b")
	assert.Equal(t, []string{"c"}, s.PendingAdditions())
	assert.Equal(t, []string{"b"}, s.PendingRemovals())

	// Add after Remove cancels the removal, Remove after Add cancels the addition.
	s.Add("b")
	s.Remove("c")
	assert.Empty(t, s.PendingAdditions())
	assert.Empty(t, s.PendingRemovals())
	assert.False(t, s.Dirty())

	s.Remove("zzz")
	assert.Empty(t, s.PendingRemovals())
	assert.Equal(t, []string{"a", "b"}, s.Members())
}

func TestEntitySetNeverPendingBothWays(t *testing.T) {
	s := NewEntitySet[string](false)
	s.replace([]string{"a"})
	for _, op := range []func(string){s.Add, s.Remove, s.Add, s.Remove, s.Remove, s.Add} {
		op("a")
		op("x")
		for _, v := range s.PendingAdditions() {
			assert.NotContains(t, s.PendingRemovals(), v)
		}
	}
}

func TestEntitySetSingletonAdd(t *testing.T) {
	s := NewEntitySet[string](true)
	s.replace([]string{"z"})

	s.Add("x")
	s.Add("y")
	assert.Equal(t, []string{"y"}, s.PendingAdditions())
	assert.Equal(t, []string{"z"}, s.PendingRemovals())

	// Re-adding the current member keeps it and drops the staged replacement.
	s.Add("z")
	assert.Empty(t, s.PendingAdditions())
	assert.Empty(t, s.PendingRemovals())
}

func TestEntitySetReplace(t *testing.T) {
	s := NewEntitySet[string](false)
	s.replace([]string{"a", "b"})
	s.Add("q")

	added, removed := s.replace([]string{"b", "c", "c"})
	assert.Equal(t, []string{"c"}, added)
	assert.Equal(t, []string{"a"}, removed)
	assert.Equal(t, []string{"b", "c"}, s.Members())
	assert.False(t, s.Dirty())
}

func TestEntitySetClear(t *testing.T) {
	s := NewEntitySet[int](false)
	s.replace([]int{1, 2})
	s.Add(3)
	s.Clear()
	assert.Empty(t, s.PendingAdditions())
	assert.Equal(t, []int{1, 2}, s.PendingRemovals())

	v, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
