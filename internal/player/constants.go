package player

import "time"

const (
	// PollInterval is how often a paused engine checks whether it may resume.
	PollInterval = 100 * time.Millisecond
	// SettleDelay separates an input prompt from the first typed character.
	SettleDelay = 300 * time.Millisecond
	// MinDeleteHold is the shortest time a banner stays fully typed.
	MinDeleteHold = 1000 * time.Millisecond

	// Progress and percentage animations draw Steps+1 frames.
	Steps = 20

	// Progress bar layout, in pixels and characters.
	ProgressPadding           = 45
	ProgressFullscreenPadding = 120
	ProgressFixedChars        = 7
	ProgressSafetyMargin      = 4
	ProgressFilled            = "█"
	ProgressEmpty             = " "

	// Bounds of the simulated network speed field.
	MinSpeed = 0.0
	MaxSpeed = 10.0
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
