// Package screen is the in-memory rendering surface the player draws on.
// It is safe for concurrent use: the player mutates it from its own
// goroutine while the UI snapshots it for display.
package screen

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"termreel/internal/render"
)

// CellWidth is the pixel width assumed for one terminal cell.
const CellWidth = 9

const CursorGlyph = "█"

type NodeKind int

const (
	LineNode NodeKind = iota
	ProgressNode
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Palette["green"])).Bold(true)

// Node is one rendered element of the screen.
type Node struct {
	ID   uuid.UUID
	Kind NodeKind

	buf    *Buffer
	prompt string
	rows   [][]render.Segment
}

// Buffer holds the nodes appended so far and the single cursor.
type Buffer struct {
	mu         sync.Mutex
	nodes      []*Node
	cols       int
	fullscreen bool
	scroll     bool
	changes    chan struct{}
	cursor     Cursor
}

func NewBuffer(cols int) *Buffer {
	b := &Buffer{
		cols:    cols,
		changes: make(chan struct{}, 1),
	}
	b.cursor = Cursor{buf: b, attached: true}
	return b
}

// Changes delivers a value whenever the buffer was modified. Notifications
// are coalesced; a reader only learns that something changed.
func (b *Buffer) Changes() <-chan struct{} {
	return b.changes
}

func (b *Buffer) notify() {
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

// NewNode creates a node that is not yet on screen.
func (b *Buffer) NewNode(kind NodeKind) *Node {
	return &Node{ID: uuid.New(), Kind: kind, buf: b}
}

// Append adds n after every node already on screen.
func (b *Buffer) Append(n *Node) {
	b.mu.Lock()
	b.nodes = append(b.nodes, n)
	b.mu.Unlock()
	b.notify()
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.nodes)
}

// Reset removes every node and puts the cursor back at the end.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.nodes = nil
	b.cursor.attached = true
	b.cursor.at = nil
	b.cursor.typing = false
	b.scroll = true
	b.mu.Unlock()
	b.notify()
}

// Width is the surface width in pixels.
func (b *Buffer) Width() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cols * CellWidth
}

func (b *Buffer) Cols() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cols
}

func (b *Buffer) SetCols(cols int) {
	b.mu.Lock()
	b.cols = cols
	b.mu.Unlock()
	b.notify()
}

func (b *Buffer) Fullscreen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fullscreen
}

func (b *Buffer) SetFullscreen(on bool) {
	b.mu.Lock()
	b.fullscreen = on
	b.mu.Unlock()
	b.notify()
}

// ScrollToBottom asks the viewer to show the last line.
func (b *Buffer) ScrollToBottom() {
	b.mu.Lock()
	b.scroll = true
	b.mu.Unlock()
	b.notify()
}

// TakeScroll reports and clears a pending scroll request.
func (b *Buffer) TakeScroll() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.scroll
	b.scroll = false
	return s
}

func (b *Buffer) Cursor() *Cursor {
	return &b.cursor
}

// LastLink returns the most recent hyperlink on screen.
func (b *Buffer) LastLink() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.nodes) - 1; i >= 0; i-- {
		rows := b.nodes[i].rows
		for r := len(rows) - 1; r >= 0; r-- {
			for s := len(rows[r]) - 1; s >= 0; s-- {
				if href := rows[r][s].Href; href != "" {
					return href, true
				}
			}
		}
	}
	return "", false
}

// ViewOptions controls Lines.
type ViewOptions struct {
	Plain bool
	// ShowCursor draws the cursor; BlinkOn is the idle blink phase.
	ShowCursor bool
	BlinkOn    bool
}

// Lines snapshots the screen as terminal lines.
func (b *Buffer) Lines(opts ViewOptions) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	cursor := ""
	if opts.ShowCursor && b.cursor.attached {
		if b.cursor.typing || opts.BlinkOn {
			cursor = CursorGlyph
		} else {
			cursor = " "
		}
	}

	ropts := render.Options{Plain: opts.Plain}
	var out []string
	for _, n := range b.nodes {
		rows := n.renderRows(ropts)
		if cursor != "" && b.cursor.at == n {
			rows[len(rows)-1] += cursor
		}
		out = append(out, rows...)
	}
	if cursor != "" && b.cursor.at == nil {
		out = append(out, cursor)
	}
	return out
}

// Text is the plain transcript of the screen without the cursor.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(ViewOptions{Plain: true}), "\n")
}

func (n *Node) renderRows(opts render.Options) []string {
	prompt := ""
	if n.prompt != "" {
		if opts.Plain {
			prompt = n.prompt + " "
		} else {
			prompt = promptStyle.Render(n.prompt) + " "
		}
	}
	if len(n.rows) == 0 {
		return []string{prompt}
	}
	out := make([]string, len(n.rows))
	for i, row := range n.rows {
		out[i] = render.Style(row, opts)
	}
	out[0] = prompt + out[0]
	return out
}

// SetPrompt sets the label drawn before the first row.
func (n *Node) SetPrompt(p string) {
	n.buf.mu.Lock()
	n.prompt = p
	n.buf.mu.Unlock()
	n.buf.notify()
}

// SetSegments replaces the node content with a single row.
func (n *Node) SetSegments(segs []render.Segment) {
	n.SetRows([][]render.Segment{segs})
}

func (n *Node) SetRows(rows [][]render.Segment) {
	n.buf.mu.Lock()
	n.rows = rows
	n.buf.mu.Unlock()
	n.buf.notify()
}

// SetText replaces the node content with unstyled text.
func (n *Node) SetText(s string) {
	n.SetSegments([]render.Segment{{Text: s}})
}

// Text is the plain content of the node without its prompt.
func (n *Node) Text() string {
	n.buf.mu.Lock()
	defer n.buf.mu.Unlock()
	parts := make([]string, len(n.rows))
	for i, row := range n.rows {
		parts[i] = render.PlainText(row)
	}
	return strings.Join(parts, "\n")
}

func (n *Node) Prompt() string {
	n.buf.mu.Lock()
	defer n.buf.mu.Unlock()
	return n.prompt
}

// Cursor is the single cursor marker of a buffer. It is either detached,
// attached after a node, or attached at the end of the screen.
type Cursor struct {
	buf      *Buffer
	attached bool
	at       *Node
	typing   bool
}

func (c *Cursor) Detach() {
	c.buf.mu.Lock()
	c.attached = false
	c.at = nil
	c.buf.mu.Unlock()
	c.buf.notify()
}

// Attach moves the cursor to the tail of n.
func (c *Cursor) Attach(n *Node) {
	c.buf.mu.Lock()
	c.attached = true
	c.at = n
	c.buf.mu.Unlock()
	c.buf.notify()
}

// AttachEnd moves the cursor to its own line after the last node.
func (c *Cursor) AttachEnd() {
	c.Attach(nil)
}

// SetTyping switches between the steady typing state and the idle blink.
func (c *Cursor) SetTyping(on bool) {
	c.buf.mu.Lock()
	c.typing = on
	c.buf.mu.Unlock()
	c.buf.notify()
}

// Location reports whether the cursor is attached and to which node; a nil
// node means the end of the screen.
func (c *Cursor) Location() (attached bool, at *Node) {
	c.buf.mu.Lock()
	defer c.buf.mu.Unlock()
	return c.attached, c.at
}

func (c *Cursor) Typing() bool {
	c.buf.mu.Lock()
	defer c.buf.mu.Unlock()
	return c.typing
}
