package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"termreel/internal/messages"
	"termreel/internal/player"
	"termreel/internal/script"
)

// startMsg begins the first playback run once the program is up.
type startMsg struct{}

// listenForActivity waits for the next change of the screen buffer.
func listenForActivity(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changes:
			return messages.FrameMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return messages.TickMsg(t)
	})
}

func playCmd(ctx context.Context, p *player.Player, s *script.Script, run int) tea.Cmd {
	return func() tea.Msg {
		err := p.Play(ctx, s)
		return messages.PlaybackDoneMsg{Run: run, Err: err}
	}
}

func settleRedraw(seq int) tea.Cmd {
	return tea.Tick(RedrawSettle, func(time.Time) tea.Msg {
		return messages.RedrawMsg{Seq: seq}
	})
}

func closeCmd() tea.Cmd {
	return tea.Tick(CloseDelay, func(time.Time) tea.Msg {
		return messages.CloseMsg{}
	})
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return messages.LinkOpenedMsg{URL: url, Err: open(url)}
	}
}

func copyCmd(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return messages.CopiedMsg{Err: copyText(text)}
	}
}
