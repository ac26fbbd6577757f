package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramDispatcher_OrderAndSingleWake(t *testing.T) {
	msgs := make(chan tea.Msg, 4)
	d := newProgramDispatcher(func(msg tea.Msg) { msgs <- msg })

	var got []int
	for i := range 3 {
		d.Dispatch(func() { got = append(got, i) })
	}

	msg := <-msgs
	drain, ok := msg.(drainMsg)
	require.True(t, ok)
	assert.Empty(t, msgs)

	drain.d.drain()
	assert.Equal(t, []int{0, 1, 2}, got)

	// A dispatch from inside a drained function wakes the loop again.
	d.Dispatch(func() {
		d.Dispatch(func() { got = append(got, 4) })
	})
	(<-msgs).(drainMsg).d.drain()
	(<-msgs).(drainMsg).d.drain()
	assert.Equal(t, []int{0, 1, 2, 4}, got)
}
