package tui

import "time"

const (
	// Timeouts and Intervals
	TickInterval = 530 * time.Millisecond
	CloseDelay   = 300 * time.Millisecond
	// RedrawSettle waits for a resize or fullscreen change to finish
	// before progress bars are recomputed.
	RedrawSettle = time.Second

	// Window Dimensions
	WindowWidth  = 84
	WindowHeight = 26
	MinBodyWidth = 20

	// Layout Offsets and Padding
	BorderWidth     = 2
	DefaultPaddingX = 1
	HeaderHeight    = 1
	FooterHeight    = 2
)

type State int

const (
	OpenState State = iota
	MinimizedState
	ClosingState
)
