package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/devconsole/internal/config"
	"github.com/jmylchreest/devconsole/internal/console"
	"github.com/jmylchreest/devconsole/internal/geometry"
	"github.com/jmylchreest/devconsole/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestModel(t *testing.T) (*Model, *store.Store, *fakeClock) {
	t.Helper()

	s := store.NewStore()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := New(Options{
		Store:  s,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    clock.Now,
	})
	t.Cleanup(m.Close)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, s, clock
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// fireAll delivers every pending timer tick, as if the time had elapsed.
func fireAll(m *Model) {
	for id := range m.sched.timers {
		m.Update(timerFiredMsg{id: id})
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(Options{Store: store.NewStore()})
	defer m.Close()
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_WindowSizePlacesControl(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Equal(t, geometry.Point{X: 1, Y: 2}, m.ctrl.Position())
	m.ctrl.SetCorner(geometry.BottomRight)
	assert.Equal(t, geometry.Point{X: 76, Y: 19}, m.ctrl.Position())
	m.ctrl.SetCorner(geometry.TopLeft)

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, lines[3], controlGlyph)
}

func TestModel_HintShowsLatestAndExpires(t *testing.T) {
	m, s, _ := newTestModel(t)

	s.Append("hello world")
	assert.True(t, m.ctrl.State().Hint.Visible)
	assert.Contains(t, m.View(), "hello world")
	assert.Equal(t, 1, m.sched.armed())

	fireAll(m)
	assert.False(t, m.ctrl.State().Hint.Visible)
	assert.NotContains(t, m.View(), "hello world")
}

func TestModel_HintRearmIgnoresStaleTick(t *testing.T) {
	m, s, _ := newTestModel(t)

	s.Append("A")
	var first uint64
	for id := range m.sched.timers {
		first = id
	}

	s.Append("B")
	m.Update(timerFiredMsg{id: first})

	st := m.ctrl.State()
	assert.True(t, st.Hint.Visible)
	assert.Equal(t, "B", st.Hint.Entry.Message)
}

func TestModel_DragSnapsByPosition(t *testing.T) {
	m, _, clock := newTestModel(t)

	m.Update(mouse(tea.MouseActionPress, 2, 3))
	clock.Advance(time.Second)
	m.Update(mouse(tea.MouseActionMotion, 70, 18))
	assert.Equal(t, geometry.Point{X: 69, Y: 17}, m.ctrl.Position())

	clock.Advance(time.Second)
	m.Update(mouse(tea.MouseActionRelease, 70, 18))

	assert.Equal(t, geometry.BottomRight, m.ctrl.Corner())
	assert.Equal(t, geometry.Point{X: 76, Y: 19}, m.ctrl.Position())
}

func TestModel_FlickSnapsByVelocity(t *testing.T) {
	m, _, clock := newTestModel(t)

	m.Update(mouse(tea.MouseActionPress, 2, 3))
	clock.Advance(20 * time.Millisecond)
	m.Update(mouse(tea.MouseActionMotion, 10, 3))
	clock.Advance(20 * time.Millisecond)
	m.Update(mouse(tea.MouseActionRelease, 10, 3))

	assert.Equal(t, geometry.TopRight, m.ctrl.Corner())
}

func TestModel_TapAfterDragIsSuppressed(t *testing.T) {
	m, _, clock := newTestModel(t)

	m.Update(mouse(tea.MouseActionPress, 2, 3))
	clock.Advance(20 * time.Millisecond)
	m.Update(mouse(tea.MouseActionMotion, 10, 3))
	clock.Advance(20 * time.Millisecond)
	m.Update(mouse(tea.MouseActionRelease, 10, 3))
	require.Equal(t, geometry.TopRight, m.ctrl.Corner())

	// The control now sits at (76, 2).
	m.Update(mouse(tea.MouseActionPress, 77, 3))
	m.Update(mouse(tea.MouseActionRelease, 77, 3))
	assert.False(t, m.ctrl.PanelOpen())

	fireAll(m)
	m.Update(mouse(tea.MouseActionPress, 77, 3))
	m.Update(mouse(tea.MouseActionRelease, 77, 3))
	assert.True(t, m.ctrl.PanelOpen())
}

func TestModel_PressOutsideControlIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(mouse(tea.MouseActionPress, 40, 12))
	m.Update(mouse(tea.MouseActionRelease, 40, 12))

	assert.False(t, m.ctrl.PanelOpen())
	assert.False(t, m.tracker.Active())
}

func TestModel_PanelKeys(t *testing.T) {
	m, s, _ := newTestModel(t)
	s.Append("first")
	s.Append("second")

	m.Update(keyMsg("`"))
	require.True(t, m.ctrl.PanelOpen())
	assert.False(t, m.ctrl.State().Hint.Visible)

	view := m.View()
	assert.Contains(t, view, "Logs (2)")
	assert.Contains(t, view, "first")
	assert.Contains(t, view, "second")
	assert.Less(t, strings.Index(view, "first"), strings.Index(view, "second"))

	_, cmd := m.Update(keyMsg("c"))
	assert.NotNil(t, cmd)
	assert.Equal(t, 0, s.Count())
	assert.Contains(t, m.View(), "No logs yet")

	m.Update(keyMsg("esc"))
	assert.False(t, m.ctrl.PanelOpen())
}

func TestModel_PanelFollowsNewEntries(t *testing.T) {
	m, s, _ := newTestModel(t)
	for i := range 40 {
		s.Append(strings.Repeat("x", i+1))
	}

	m.Update(keyMsg("`"))
	assert.True(t, m.panel.AtBottom())

	s.Append("newest")
	m.Update(nil)
	assert.True(t, m.panel.AtBottom())
	assert.Contains(t, m.View(), "newest")
}

func TestModel_ClearHidesHint(t *testing.T) {
	m, s, _ := newTestModel(t)

	s.Append("hello")
	require.True(t, m.ctrl.State().Hint.Visible)

	s.Clear()
	assert.False(t, m.ctrl.State().Hint.Visible)
}

func TestModel_CornerKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	tests := []struct {
		key  string
		want geometry.Corner
	}{
		{"2", geometry.TopRight},
		{"3", geometry.BottomLeft},
		{"4", geometry.BottomRight},
		{"1", geometry.TopLeft},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			m.Update(keyMsg(tt.key))
			assert.Equal(t, tt.want, m.ctrl.Corner())
		})
	}
}

func TestModel_HintSideFollowsCorner(t *testing.T) {
	m, s, _ := newTestModel(t)
	s.Append("side")

	st := m.ctrl.State()
	hint := m.renderHint(st.Hint.Entry)
	x, y := hintOrigin(st, 3, hint)
	assert.Equal(t, 5, x)
	assert.Equal(t, 2, y)

	m.Update(keyMsg("4"))
	st = m.ctrl.State()
	x, y = hintOrigin(st, 3, hint)
	assert.Equal(t, 76-1-len([]rune(strings.Split(hint, "\n")[0])), x)
	assert.Equal(t, 19+3-4, y)
}

func TestModel_ConfigReload(t *testing.T) {
	m, _, _ := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Control.Metrics.Padding = 2
	cfg.Hint.Duration = config.Duration(time.Second)
	cfg.Control.VelocityWindow = config.Duration(20 * time.Millisecond)

	m.Update(ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, geometry.Point{X: 2, Y: 3}, m.ctrl.Position())
	assert.Equal(t, time.Second, m.ctrl.Hint().Duration())
}

func TestModel_VelocityWindowFromConfig(t *testing.T) {
	m, _, clock := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Control.VelocityWindow = config.Duration(20 * time.Millisecond)
	m.Update(ConfigReloadedMsg{Config: cfg})

	// A fast move, a pause and a release. Only the pause falls inside the
	// narrowed window, so the release has no velocity and snaps by position.
	m.Update(mouse(tea.MouseActionPress, 2, 3))
	clock.Advance(20 * time.Millisecond)
	m.Update(mouse(tea.MouseActionMotion, 20, 3))
	clock.Advance(50 * time.Millisecond)
	m.Update(mouse(tea.MouseActionMotion, 20, 3))
	clock.Advance(10 * time.Millisecond)
	m.Update(mouse(tea.MouseActionRelease, 20, 3))

	assert.Equal(t, geometry.TopLeft, m.ctrl.Corner())
}

func TestModel_DispatchedPrint(t *testing.T) {
	m, s, _ := newTestModel(t)

	msgs := make(chan tea.Msg, 1)
	c := console.New(s, io.Discard, newProgramDispatcher(func(msg tea.Msg) { msgs <- msg }))

	c.Print("from", "elsewhere")
	msg := <-msgs
	assert.Equal(t, 0, s.Count())

	m.Update(msg)
	require.Equal(t, 1, s.Count())
	st := m.ctrl.State()
	assert.True(t, st.Hint.Visible)
	assert.Equal(t, "from elsewhere", st.Hint.Entry.Message)
}

func TestModel_StatusExpires(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(statusMsg{text: "one"})
	stale := clearStatusMsg{gen: m.statusGen}
	m.Update(statusMsg{text: "two"})

	m.Update(stale)
	assert.Equal(t, "two", m.statusMsg)

	m.Update(clearStatusMsg{gen: m.statusGen})
	assert.Empty(t, m.statusMsg)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
