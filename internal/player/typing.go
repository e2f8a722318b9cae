package player

import (
	"context"
	"time"

	"termreel/internal/render"
	"termreel/internal/screen"
	"termreel/internal/script"
)

// typeContent reveals c in node one character every charDelay. When erase is
// set the full text is held for a while and then removed one character
// every deleteDelay until nothing is left.
func (p *Player) typeContent(ctx context.Context, node *screen.Node, c script.Content, charDelay time.Duration, erase bool, deleteDelay time.Duration) error {
	cursor := p.surface.Cursor()
	cursor.SetTyping(true)
	defer cursor.SetTyping(false)

	total := render.Len(c)
	for n := 1; n <= total; n++ {
		if err := p.pause.Wait(ctx, p.clock); err != nil {
			return err
		}
		p.reveal(node, c, n)
		if err := p.clock.Sleep(ctx, charDelay); err != nil {
			return err
		}
	}
	if !erase {
		return nil
	}

	if err := p.hold(ctx, deleteHold(c)); err != nil {
		return err
	}
	for n := total - 1; n >= 0; n-- {
		if err := p.pause.Wait(ctx, p.clock); err != nil {
			return err
		}
		p.reveal(node, c, n)
		if err := p.clock.Sleep(ctx, deleteDelay); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) reveal(node *screen.Node, c script.Content, n int) {
	node.SetSegments(render.Reveal(c, n))
	p.surface.Cursor().Attach(node)
	p.surface.ScrollToBottom()
}

// hold waits d in PollInterval slices. Time spent paused does not count.
func (p *Player) hold(ctx context.Context, d time.Duration) error {
	for d > 0 {
		if err := p.pause.Wait(ctx, p.clock); err != nil {
			return err
		}
		slice := min(d, PollInterval)
		if err := p.clock.Sleep(ctx, slice); err != nil {
			return err
		}
		d -= slice
	}
	return nil
}

// deleteHold is how long a message stays fully visible before deletion.
func deleteHold(c script.Content) time.Duration {
	hold := MinDeleteHold
	for _, r := range c {
		if d := ms(r.DeleteDelay); d > hold {
			hold = d
		}
	}
	return hold
}
