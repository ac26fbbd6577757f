package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/devconsole/internal/geometry"
	"github.com/jmylchreest/devconsole/internal/store"
)

func TestHint_ShowsLatestAndAutoHides(t *testing.T) {
	f := newFixture(t)

	f.store.Append("A")
	entry, ok := f.ctrl.Hint().Entry()
	require.True(t, ok)
	assert.Equal(t, "A", entry.Message)

	f.sched.Advance(4900 * time.Millisecond)
	assert.True(t, f.ctrl.Hint().Visible())

	f.sched.Advance(200 * time.Millisecond)
	assert.False(t, f.ctrl.Hint().Visible())
	_, ok = f.ctrl.Hint().Entry()
	assert.False(t, ok)
}

func TestHint_RearmRestartsCountdown(t *testing.T) {
	f := newFixture(t)

	f.store.Append("first")
	f.sched.Advance(3 * time.Second)
	f.store.Append("second")

	// 5.1s after the first append, 2.1s after the second.
	f.sched.Advance(2100 * time.Millisecond)
	assert.True(t, f.ctrl.Hint().Visible())

	// 4.9s after the second append.
	f.sched.Advance(2800 * time.Millisecond)
	assert.True(t, f.ctrl.Hint().Visible())

	// 5.1s after the second append.
	f.sched.Advance(200 * time.Millisecond)
	assert.False(t, f.ctrl.Hint().Visible())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestHint_BurstKeepsSingleTimer(t *testing.T) {
	f := newFixture(t)

	for _, msg := range []string{"1", "2", "3", "4"} {
		f.store.Append(msg)
	}

	assert.Equal(t, 1, f.sched.Pending())
	entry, ok := f.ctrl.Hint().Entry()
	require.True(t, ok)
	assert.Equal(t, "4", entry.Message)
}

func TestHint_EmptyStoreNeverShows(t *testing.T) {
	s := store.NewStore()
	defer s.Close()
	sched := NewManualScheduler()
	h := NewHint(s, sched, 0, nil)

	h.OnLogCountChanged()
	assert.False(t, h.Visible())
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, DefaultHintDuration, h.Duration())
}

func TestHint_ClearHidesHint(t *testing.T) {
	f := newFixture(t)

	f.store.Append("x")
	require.True(t, f.ctrl.Hint().Visible())

	f.store.Clear()
	assert.False(t, f.ctrl.Hint().Visible())
	assert.Equal(t, 0, f.sched.Pending())
}

// staleScheduler never cancels: Stop reports success but the callback still
// runs, like a tick message already in flight.
type staleScheduler struct {
	fns []func()
}

func (s *staleScheduler) AfterFunc(_ time.Duration, fn func()) Timer {
	s.fns = append(s.fns, fn)
	return staleTimer{}
}

type staleTimer struct{}

func (staleTimer) Stop() bool { return true }

func TestHint_IgnoresStaleTimer(t *testing.T) {
	s := store.NewStore()
	defer s.Close()
	sched := &staleScheduler{}
	h := NewHint(s, sched, time.Second, nil)

	s.Append("a")
	h.OnLogCountChanged()
	s.Append("b")
	h.OnLogCountChanged()
	require.Len(t, sched.fns, 2)

	sched.fns[0]()
	assert.True(t, h.Visible(), "stale callback must not hide the newer hint")

	sched.fns[1]()
	assert.False(t, h.Visible())
}

func TestSideFor(t *testing.T) {
	assert.Equal(t, HintRight, SideFor(geometry.TopLeft))
	assert.Equal(t, HintRight, SideFor(geometry.BottomLeft))
	assert.Equal(t, HintLeft, SideFor(geometry.TopRight))
	assert.Equal(t, HintLeft, SideFor(geometry.BottomRight))
	assert.Equal(t, "left", HintLeft.String())
	assert.Equal(t, "right", HintRight.String())
}

func TestScenario_AppendHintPanelClear(t *testing.T) {
	f := newFixture(t)
	f.ctrl.ViewportResized(phone)

	f.store.Append("A")
	entry, ok := f.ctrl.Hint().Entry()
	require.True(t, ok)
	assert.Equal(t, "A", entry.Message)

	f.sched.Advance(2 * time.Second)
	f.store.Append("B")
	entry, _ = f.ctrl.Hint().Entry()
	assert.Equal(t, "B", entry.Message)

	f.sched.Advance(5100 * time.Millisecond)
	assert.False(t, f.ctrl.Hint().Visible())

	require.True(t, f.ctrl.Tap())
	entries := f.store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Message)
	assert.Equal(t, "B", entries[1].Message)

	f.store.Clear()
	assert.Empty(t, f.store.Entries())
	_, ok = f.store.Latest()
	assert.False(t, ok)
	assert.True(t, f.ctrl.PanelOpen())
}
