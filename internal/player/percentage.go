package player

import (
	"context"
	"log/slog"

	"termreel/internal/fields"
	"termreel/internal/screen"
	"termreel/internal/script"
)

// runPercentages interpolates every numeric field of text from its start to
// its end value in Steps+1 frames. The frame interval is the shortest
// declared duration divided by Steps. A line whose fields cannot be found
// is shown as written and not animated.
func (p *Player) runPercentages(ctx context.Context, node *screen.Node, text string, specs []script.PercentageSpec) error {
	base := fields.StripDone(text)
	fs, err := fields.Locate(base, len(specs))
	if err != nil {
		p.log.Warn("skipping percentage animation", slog.String("text", base), slog.Any("error", err))
		node.SetText(text)
		return nil
	}

	shortest := specs[0].DurationMs()
	for _, s := range specs[1:] {
		shortest = min(shortest, s.DurationMs())
	}
	step := ms(shortest) / Steps

	values := make([]float64, len(fs))
	for i := 0; i <= Steps; i++ {
		if err := p.pause.Wait(ctx, p.clock); err != nil {
			return err
		}
		frac := float64(i) / Steps
		for j, f := range fs {
			if f.Speed {
				values[j] = p.speed(frac)
				continue
			}
			s := specs[j]
			values[j] = s.Start + (s.End-s.Start)*frac
		}

		out := fields.Substitute(base, fs, values)
		if i == Steps {
			out += fields.DoneSuffix
		}
		node.SetText(out)
		p.surface.ScrollToBottom()
		if err := p.clock.Sleep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// speed draws a value from a window that slides up with progress, so the
// field jitters while trending upward.
func (p *Player) speed(frac float64) float64 {
	span := MaxSpeed - MinSpeed
	low := MinSpeed + span*frac*0.8
	high := min(MaxSpeed, low+span*0.2)
	return low + p.random()*(high-low)
}
