// Package tui hosts a playing script in a terminal window: a title bar
// with close, minimize and fullscreen controls above a scrolling body.
package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"termreel/internal/player"
	"termreel/internal/screen"
	"termreel/internal/script"
)

type Config struct {
	// Context bounds every playback run; cancelling it stops playback.
	Context context.Context
	Script  *script.Script
	Buffer  *screen.Buffer
	Player  *player.Player
	// ExitOnFinish closes the window once the script has played.
	ExitOnFinish bool
	Logger       *slog.Logger
	// OpenURL opens a link; defaults to the system browser.
	OpenURL func(string) error
	// Copy puts the transcript on the clipboard.
	Copy func(string) error
}

type RootModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	script *script.Script
	buf    *screen.Buffer
	player *player.Player
	log    *slog.Logger

	viewport viewport.Model
	keys     keyMap
	help     help.Model

	state        State
	width        int
	height       int
	fullscreen   bool
	blinkOn      bool
	exitOnFinish bool
	openURL      func(string) error
	copyText     func(string) error

	run            int
	playing        bool
	restartPending bool
	redrawSeq      int
	notice         string
}

func NewRootModel(cfg Config) RootModel {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	open := cfg.OpenURL
	if open == nil {
		open = openInBrowser
	}
	copyText := cfg.Copy
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	buf := cfg.Buffer
	if buf == nil {
		buf = screen.NewBuffer(WindowWidth)
	}
	p := cfg.Player
	if p == nil {
		p = player.New(buf, player.WithLogger(log))
	}

	m := RootModel{
		ctx:          ctx,
		cancel:       func() {},
		script:       cfg.Script,
		buf:          buf,
		player:       p,
		log:          log,
		viewport:     viewport.New(WindowWidth, WindowHeight),
		keys:         defaultKeys(),
		help:         help.New(),
		blinkOn:      true,
		exitOnFinish: cfg.ExitOnFinish,
		openURL:      open,
		copyText:     copyText,
	}
	m.layout()
	return m
}

// Init starts playback, frame delivery and the cursor blink.
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(
		listenForActivity(m.ctx, m.buf.Changes()),
		tickCmd(),
		func() tea.Msg { return startMsg{} },
	)
}

// startPlayback runs the script on a fresh cancellable context. Callers
// must store m back: it records the run.
func (m *RootModel) startPlayback() tea.Cmd {
	if m.script == nil {
		return nil
	}
	m.run++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.playing = true
	return playCmd(ctx, m.player, m.script, m.run)
}

// restart replays the script from an empty screen. A running playback is
// cancelled first and the replay starts once it has returned.
func (m *RootModel) restart() tea.Cmd {
	if m.playing {
		m.restartPending = true
		m.cancel()
		return nil
	}
	m.buf.Reset()
	m.player.Reset()
	m.refresh()
	return m.startPlayback()
}

// layout sizes the body for the terminal and the window mode, and hands
// the resulting column count to the surface.
func (m *RootModel) layout() {
	width, height := m.width, m.height
	if width <= 0 {
		width = WindowWidth
	}
	if height <= 0 {
		height = WindowHeight
	}

	frame := 0
	if !m.fullscreen {
		width = min(width, WindowWidth)
		height = min(height, WindowHeight)
		frame = BorderWidth
	}

	cols := max(width-frame-2*DefaultPaddingX, MinBodyWidth)
	rows := max(height-frame-HeaderHeight-FooterHeight, 1)

	m.viewport.Width = cols
	m.viewport.Height = rows
	m.help.Width = cols
	m.buf.SetCols(cols)
	m.buf.SetFullscreen(m.fullscreen)
	m.refresh()
}

func openInBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}
