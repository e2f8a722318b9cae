package player

import "termreel/internal/screen"

// Surface is what the player draws on. *screen.Buffer implements it.
type Surface interface {
	NewNode(kind screen.NodeKind) *screen.Node
	Append(n *screen.Node)
	// Width is the current width in pixels; zero means unavailable.
	Width() int
	Fullscreen() bool
	ScrollToBottom()
	Cursor() *screen.Cursor
}
