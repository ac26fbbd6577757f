package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/devconsole/internal/control"
	"github.com/jmylchreest/devconsole/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	controlStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Foreground(lipgloss.Color("12")).
			Align(lipgloss.Center, lipgloss.Center)

	controlDragStyle = controlStyle.
				BorderForeground(lipgloss.Color("11")).
				Foreground(lipgloss.Color("11"))

	hintStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

const (
	controlGlyph = "≡"
	minHintWidth = 8
)

// View renders the TUI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	screen := canvas(m.host(m.width, m.height), m.width, m.height)
	st := m.ctrl.State()

	if st.PanelOpen {
		panel := m.renderPanel()
		x := (m.width - lipgloss.Width(panel)) / 2
		y := (m.height - lipgloss.Height(panel)) / 2
		overlay(screen, panel, x, y)
	} else {
		d := int(m.ctrl.Metrics().ControlDiameter)
		x, y := cell(st.Position.X), cell(st.Position.Y)
		overlay(screen, renderControl(d, st.Drag == control.DragActive), x, y)

		if st.Hint.Visible {
			hint := m.renderHint(st.Hint.Entry)
			hx, hy := hintOrigin(st, d, hint)
			overlay(screen, hint, hx, hy)
		}
	}

	bar := m.renderBar()
	overlay(screen, bar, 0, m.height-lipgloss.Height(bar))

	return strings.Join(screen, "\n")
}

func cell(v float64) int {
	return int(math.Round(v))
}

// defaultHost draws a title row and a short usage note.
func defaultHost(width, height int) string {
	title := titleStyle.Render("devconsole")
	body := dimStyle.Render(strings.Join([]string{
		"Printed messages flash beside the floating control",
		"and collect in the log panel.",
		"",
		"Drag the control to any corner, click it or press ` to open the panel.",
	}, "\n"))

	if height < 2 {
		return title
	}
	return title + "\n" + lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, body)
}

// renderControl draws the toggle as a d by d square.
func renderControl(d int, dragging bool) string {
	if d <= 0 {
		return ""
	}
	if d < 3 {
		row := strings.Repeat("█", d)
		return strings.TrimSuffix(strings.Repeat(row+"\n", d), "\n")
	}

	style := controlStyle
	if dragging {
		style = controlDragStyle
	}
	return style.Width(d - 2).Height(d - 2).Render(controlGlyph)
}

// renderHint draws the latest entry's time and first line.
func (m *Model) renderHint(e model.Entry) string {
	maxWidth := max(m.cfg.Hint.MaxWidth, minHintWidth)

	message, _, _ := strings.Cut(e.Message, "\n")
	message = ansi.Truncate(message, maxWidth, "…")

	return hintStyle.Render(dimStyle.Render(e.FormattedTime()) + "\n" + message)
}

// hintOrigin places the hint beside the control on its hint side, aligned
// with the control's top edge in top corners and its bottom edge in bottom
// corners.
func hintOrigin(st control.State, d int, hint string) (int, int) {
	x, y := cell(st.Position.X), cell(st.Position.Y)

	if st.Hint.Side == control.HintRight {
		x += d + 1
	} else {
		x -= lipgloss.Width(hint) + 1
	}
	if st.Corner.IsBottom() {
		y += d - lipgloss.Height(hint)
	}
	return x, y
}

// panelSize returns the outer size of the log panel.
func (m *Model) panelSize() (int, int) {
	return max(m.width-4, min(m.width, 20)), max(m.height-4, min(m.height, 6))
}

// resizePanel fits the viewport inside the panel's border, title and
// footer rows.
func (m *Model) resizePanel() {
	w, h := m.panelSize()
	m.panel.Width = max(w-2, 0)
	m.panel.Height = max(h-4, 0)
	m.logsChanged = true
}

// syncPanel refreshes the panel after the store or the panel flag changed.
// Opening the panel scrolls to the newest entry; new entries keep it pinned
// there if it already was.
func (m *Model) syncPanel() {
	open := m.ctrl.PanelOpen()
	switch {
	case open && !m.panelShown:
		m.panel.SetContent(m.renderEntries())
		m.panel.GotoBottom()
	case open && m.logsChanged:
		atBottom := m.panel.AtBottom()
		m.panel.SetContent(m.renderEntries())
		if atBottom {
			m.panel.GotoBottom()
		}
	}
	m.panelShown = open
	m.logsChanged = false
}

// renderEntries lists every entry, oldest first.
func (m *Model) renderEntries() string {
	entries := m.store.Entries()
	if len(entries) == 0 {
		return dimStyle.Render("No logs yet")
	}

	width := max(m.panel.Width, 1)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := timeStyle.Render(e.FormattedTime()) + "  " + e.Message
		lines = append(lines, ansi.Wrap(line, width, ""))
	}
	return strings.Join(lines, "\n")
}

// renderPanel draws the bordered log panel.
func (m *Model) renderPanel() string {
	w, _ := m.panelSize()
	inner := max(w-2, 0)

	count := m.store.Count()
	header := fit(titleStyle.Render(fmt.Sprintf("Logs (%d)", count)), inner)
	footer := fit(dimStyle.Render(m.panelFooter()), inner)

	return panelStyle.Render(header + "\n" + m.panel.View() + "\n" + footer)
}

// panelFooter summarises the buffer.
func (m *Model) panelFooter() string {
	entries := m.store.Entries()
	if len(entries) == 0 {
		return "empty · esc done"
	}

	var size uint64
	for _, e := range entries {
		size += uint64(len(e.Message))
	}
	latest := entries[len(entries)-1]

	return fmt.Sprintf("%s entries · %s · newest %s · c clear · esc done",
		humanize.Comma(int64(len(entries))),
		humanize.Bytes(size),
		latest.RelativeTime(),
	)
}

// renderBar draws the status message, or the key help when there is none.
func (m *Model) renderBar() string {
	if m.statusMsg != "" && !m.help.ShowAll {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			style = style.Foreground(lipgloss.Color("9"))
		}
		return style.Render(m.statusMsg)
	}
	return m.help.View(m.keys)
}
