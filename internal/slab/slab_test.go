package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushGetRemove(t *testing.T) {
	s := New[string]()
	a := s.Push("a")
	b := s.Push("b")
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)

	v, ok := s.Get(a)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = s.Remove(a)
	require.True(t, ok)
	assert.False(t, s.Contains(a))
}

func TestPushReusesLowestFreedSlot(t *testing.T) {
	s := New[int]()
	s.Push(1)
	b := s.Push(2)
	s.Push(3)

	s.Remove(b)
	reused := s.Push(20)
	assert.Equal(t, b, reused)

	v, ok := s.Get(reused)
	require.True(t, ok)
	assert.Equal(t, 20, v)
}

func TestGetPtrMutatesInPlace(t *testing.T) {
	type thing struct{ n int }
	s := New[thing]()
	h := s.Push(thing{n: 1})

	p := s.GetPtr(h)
	require.NotNil(t, p)
	p.n = 42

	v, _ := s.Get(h)
	assert.Equal(t, 42, v.n)
}

func TestEachVisitsOccupiedOnly(t *testing.T) {
	s := New[int]()
	a := s.Push(1)
	s.Push(2)
	s.Remove(a)

	seen := map[int]int{}
	s.Each(func(h int, v *int) { seen[h] = *v })
	assert.Equal(t, map[int]int{1: 2}, seen)
}

func TestFindAndHandles(t *testing.T) {
	s := New[int]()
	s.Push(1)
	target := s.Push(2)
	s.Push(3)

	h, ok := s.Find(func(v *int) bool { return *v == 2 })
	require.True(t, ok)
	assert.Equal(t, target, h)

	assert.Equal(t, []int{0, 1, 2}, s.Handles())
}

func TestGetOutOfRangeIsFalse(t *testing.T) {
	s := New[int]()
	_, ok := s.Get(5)
	assert.False(t, ok)
	_, ok = s.Remove(5)
	assert.False(t, ok)
}
