package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"termreel/internal/messages"
	"termreel/internal/player"
)

// Update handles messages and updates the model
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case startMsg:
		return m, m.startPlayback()

	case messages.FrameMsg:
		m.refresh()
		cmds = append(cmds, listenForActivity(m.ctx, m.buf.Changes()))

	case messages.PlaybackDoneMsg:
		if msg.Run != m.run {
			return m, nil
		}
		m.playing = false
		m.cancel()
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.log.Error("playback failed", slog.Any("error", msg.Err))
			m.notice = msg.Err.Error()
		}
		if m.restartPending {
			m.restartPending = false
			return m, m.restart()
		}
		if msg.Err == nil && m.exitOnFinish {
			return m.beginClose()
		}
		m.refresh()

	case messages.ReloadMsg:
		if m.state == ClosingState {
			return m, nil
		}
		m.script = msg.Script
		m.notice = "script reloaded"
		return m, m.restart()

	case messages.TickMsg:
		m.blinkOn = !m.blinkOn
		m.refresh()
		cmds = append(cmds, tickCmd())

	case messages.RedrawMsg:
		if msg.Seq == m.redrawSeq {
			n := m.player.RedrawProgress()
			m.log.Debug("progress bars redrawn", slog.Int("bars", n), slog.Int("cols", m.buf.Cols()))
		}

	case messages.CloseMsg:
		return m, tea.Quit

	case messages.LinkOpenedMsg:
		if msg.Err != nil {
			m.notice = "could not open " + msg.URL
			m.log.Warn("open link failed", slog.String("url", msg.URL), slog.Any("error", msg.Err))
		} else {
			m.notice = "opened " + msg.URL
		}

	case messages.CopiedMsg:
		if msg.Err != nil {
			m.notice = "copy failed"
			m.log.Warn("copy transcript failed", slog.Any("error", msg.Err))
		} else {
			m.notice = "transcript copied"
		}

	case tea.FocusMsg:
		m.player.Pause().Set(player.ReasonHidden, false)

	case tea.BlurMsg:
		m.player.Pause().Set(player.ReasonHidden, true)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, m.scheduleRedraw()

	case tea.KeyMsg:
		if m.state == ClosingState {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Close):
			return m.beginClose()

		case key.Matches(msg, m.keys.Minimize):
			minimized := m.state != MinimizedState
			if minimized {
				m.state = MinimizedState
			} else {
				m.state = OpenState
			}
			m.player.Pause().Set(player.ReasonMinimized, minimized)
			return m, nil

		case key.Matches(msg, m.keys.Fullscreen):
			m.fullscreen = !m.fullscreen
			if m.state == MinimizedState {
				m.state = OpenState
				m.player.Pause().Set(player.ReasonMinimized, false)
			}
			m.layout()
			return m, m.scheduleRedraw()

		case key.Matches(msg, m.keys.Pause):
			if m.player.Pause().Toggle(player.ReasonUser) {
				m.notice = "paused"
			} else {
				m.notice = ""
			}
			return m, nil

		case key.Matches(msg, m.keys.Open):
			href, ok := m.buf.LastLink()
			if !ok {
				m.notice = "no link on screen"
				return m, nil
			}
			return m, openCmd(m.openURL, href)

		case key.Matches(msg, m.keys.Copy):
			return m, copyCmd(m.copyText, m.buf.Text())

		case key.Matches(msg, m.keys.Restart):
			m.notice = ""
			return m, m.restart()
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// beginClose cancels playback and quits after the closing animation.
func (m RootModel) beginClose() (tea.Model, tea.Cmd) {
	m.state = ClosingState
	m.restartPending = false
	m.cancel()
	return m, closeCmd()
}

// scheduleRedraw redraws the progress bars once the layout stops changing.
func (m *RootModel) scheduleRedraw() tea.Cmd {
	m.redrawSeq++
	return settleRedraw(m.redrawSeq)
}
