package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"termreel/internal/player"
	"termreel/internal/render"
	"termreel/internal/screen"
)

var (
	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(render.Palette["cyan"])).
			Padding(0, DefaultPaddingX)
	fullscreenStyle = lipgloss.NewStyle().Padding(0, DefaultPaddingX)
	closingStyle    = lipgloss.NewStyle().Faint(true)

	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Palette["cyan"]))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Palette["yellow"]))

	closeDot      = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Palette["red"])).Render("●")
	minimizeDot   = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Palette["yellow"])).Render("●")
	fullscreenDot = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Palette["green"])).Render("●")
)

// refresh copies the buffer into the viewport, wrapped to the body width.
func (m *RootModel) refresh() {
	lines := m.buf.Lines(screen.ViewOptions{ShowCursor: true, BlinkOn: m.blinkOn})
	width := m.viewport.Width
	for i, l := range lines {
		lines[i] = ansi.Wrap(l, width, "")
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if m.buf.TakeScroll() {
		m.viewport.GotoBottom()
	}
}

func (m RootModel) View() string {
	width := m.viewport.Width
	parts := []string{m.headerView(width)}

	if m.state != MinimizedState {
		parts = append(parts, m.viewport.View(), m.statusView(width), m.help.View(m.keys))
	}
	body := strings.Join(parts, "\n")

	style := windowStyle
	if m.fullscreen {
		style = fullscreenStyle
	}
	out := style.Render(body)
	if m.state == ClosingState {
		out = closingStyle.Render(ansi.Strip(out))
	}
	return out
}

func (m RootModel) headerView(width int) string {
	dots := closeDot + " " + minimizeDot + " " + fullscreenDot
	title := "termreel"
	if m.script != nil && m.script.Title != "" {
		title = m.script.Title
	}
	room := width - lipgloss.Width(dots) - 1
	if room < 1 {
		return dots
	}
	title = runewidth.Truncate(title, room, "…")
	return dots + lipgloss.PlaceHorizontal(room+1, lipgloss.Center, titleStyle.Render(title))
}

func (m RootModel) statusView(width int) string {
	st := m.player.Status()
	var state string
	switch {
	case m.player.Pause().Paused() && st.State != player.StateExhausted:
		state = "paused"
	case st.State == player.StateIdle && !m.playing:
		state = "ready"
	default:
		state = st.State.String()
	}

	line := min(st.Line+1, st.Total)
	status := fmt.Sprintf("%s · line %d/%d", state, line, st.Total)
	if m.fullscreen {
		status += " · fullscreen"
	}

	plain := status
	if m.notice != "" {
		plain += " · " + m.notice
	}
	if runewidth.StringWidth(plain) > width {
		return statusStyle.Render(runewidth.Truncate(plain, width, "…"))
	}
	out := statusStyle.Render(status)
	if m.notice != "" {
		out += statusStyle.Render(" · ") + noticeStyle.Render(m.notice)
	}
	return out
}
