package cassowary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexedMapBasics(t *testing.T) {
	m := newIndexedMap[string, int]()

	require.Equal(t, 0, m.Len())
	_, ok := m.Get("a")
	require.False(t, ok)

	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	require.Equal(t, 3, m.Len())

	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	// Overwrite keeps position.
	m.Set("b", 20)
	k, v := m.At(1)
	require.Equal(t, "b", k)
	require.Equal(t, 20, v)
}

func TestIndexedMapInsertionOrder(t *testing.T) {
	m := newIndexedMap[int, int]()
	for i := 0; i < 5; i++ {
		m.Set(i, i*i)
	}

	var seen []int
	m.Each(func(k, v int) bool {
		seen = append(seen, k)
		return true
	})
	require.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestIndexedMapDeleteSwapsWithLast(t *testing.T) {
	m := newIndexedMap[int, string]()
	m.Set(1, "a")
	m.Set(2, "b")
	m.Set(3, "c")
	m.Set(4, "d")

	require.True(t, m.Delete(2))
	require.False(t, m.Delete(2))
	require.Equal(t, 3, m.Len())

	// The last element ("d") should have been moved into slot 1.
	k, v := m.At(1)
	require.Equal(t, 4, k)
	require.Equal(t, "d", v)

	_, ok := m.Get(2)
	require.False(t, ok)

	for _, k := range []int{1, 3, 4} {
		_, ok := m.Get(k)
		require.True(t, ok)
	}
}

func TestIndexedMapEachEarlyExit(t *testing.T) {
	m := newIndexedMap[int, int]()
	for i := 0; i < 10; i++ {
		m.Set(i, i)
	}

	var visited int
	m.Each(func(k, v int) bool {
		visited++
		return k != 3
	})
	require.Equal(t, 4, visited)
}

func TestIndexedMapClone(t *testing.T) {
	m := newIndexedMap[int, int]()
	m.Set(1, 10)
	m.Set(2, 20)

	clone := m.clone()
	clone.Set(1, 999)
	clone.Set(3, 30)

	v, _ := m.Get(1)
	require.Equal(t, 10, v)
	require.False(t, m.Has(3))

	v, _ = clone.Get(1)
	require.Equal(t, 999, v)
	require.True(t, clone.Has(3))
}
