// Package messages holds the Bubble Tea messages exchanged between the
// playback goroutines and the interactive model.
package messages

import (
	"time"

	"termreel/internal/script"
)

// FrameMsg reports that the screen buffer changed.
type FrameMsg struct{}

// PlaybackDoneMsg is sent when a playback run returns. Run identifies the
// run so that results of a cancelled run can be told apart.
type PlaybackDoneMsg struct {
	Run int
	Err error
}

// TickMsg drives the cursor blink.
type TickMsg time.Time

// RedrawMsg asks for the progress bars to be redrawn once the layout has
// settled. Only the most recent Seq is honoured.
type RedrawMsg struct {
	Seq int
}

// CloseMsg ends the closing animation.
type CloseMsg struct{}

// ReloadMsg carries a script that changed on disk.
type ReloadMsg struct {
	Script *script.Script
}

// LinkOpenedMsg reports the result of opening a link in the browser.
type LinkOpenedMsg struct {
	URL string
	Err error
}

// CopiedMsg reports the result of copying the transcript.
type CopiedMsg struct {
	Err error
}
