package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	s := NewStore()
	assert.NotNil(t, s)
	assert.Equal(t, 0, s.Count())

	_, ok := s.Latest()
	assert.False(t, ok)
}

func TestDefault_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestStore_AppendPreservesOrder(t *testing.T) {
	s := NewStore()
	defer s.Close()

	for n := 1; n <= 25; n++ {
		s.Append(fmt.Sprintf("msg-%d", n))
		assert.Equal(t, n, s.Count())
	}

	entries := s.Entries()
	require.Len(t, entries, 25)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("msg-%d", i+1), e.Message)
	}

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "msg-25", latest.Message)
}

func TestStore_AppendReturnsEntry(t *testing.T) {
	s := NewStore()
	defer s.Close()

	e := s.Append("hello")
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, e, latest)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Append("a")
	s.Append("b")
	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Entries())
	_, ok := s.Latest()
	assert.False(t, ok)

	s.Append("c")
	assert.Equal(t, 1, s.Count())
}

func TestStore_EntriesIsCopy(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Append("original")
	entries := s.Entries()
	entries[0].Message = "changed"

	latest, _ := s.Latest()
	assert.Equal(t, "original", latest.Message)
}

func TestStore_OnChangeIsSynchronous(t *testing.T) {
	s := NewStore()
	defer s.Close()

	var events []ChangeEvent
	var seenLatest []string
	s.OnChange(func(ev ChangeEvent) {
		events = append(events, ev)
		if e, ok := s.Latest(); ok {
			seenLatest = append(seenLatest, e.Message)
		}
	})

	s.Append("a")
	require.Len(t, events, 1)
	assert.Equal(t, ChangeEvent{Type: ChangeTypeAppend, Count: 1}, events[0])

	s.Append("b")
	s.Clear()
	require.Len(t, events, 3)
	assert.Equal(t, ChangeEvent{Type: ChangeTypeAppend, Count: 2}, events[1])
	assert.Equal(t, ChangeEvent{Type: ChangeTypeClear, Count: 0}, events[2])
	assert.Equal(t, []string{"a", "b"}, seenLatest)
}

func TestStore_OnChangeOrderAndCancel(t *testing.T) {
	s := NewStore()
	defer s.Close()

	var order []string
	s.OnChange(func(ChangeEvent) { order = append(order, "first") })
	cancel := s.OnChange(func(ChangeEvent) { order = append(order, "second") })

	s.Append("x")
	assert.Equal(t, []string{"first", "second"}, order)

	cancel()
	order = nil
	s.Append("y")
	assert.Equal(t, []string{"first"}, order)
}

func TestStore_Close(t *testing.T) {
	s := NewStore()

	calls := 0
	s.OnChange(func(ChangeEvent) { calls++ })

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	s.Append("ignored")
	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, calls)
}

func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "append", ChangeTypeAppend.String())
	assert.Equal(t, "clear", ChangeTypeClear.String())
	assert.Equal(t, "unknown", ChangeType(99).String())
}
