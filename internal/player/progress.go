package player

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"termreel/internal/screen"
)

// ProgressBar renders "[NNN%] " followed by a bar sized to fit width pixels.
func ProgressBar(width int, fullscreen bool, percent int) string {
	padding := ProgressPadding
	if fullscreen {
		padding = ProgressFullscreenPadding
	}
	available := floorDiv(width-padding, screen.CellWidth)
	barWidth := max(0, available-ProgressFixedChars-ProgressSafetyMargin)
	filled := max(0, barWidth*percent/100)
	empty := max(0, barWidth-filled)

	return fmt.Sprintf("[%3d%%] %s%s", percent, strings.Repeat(ProgressFilled, filled), strings.Repeat(ProgressEmpty, empty))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ProgressBars tracks every progress bar drawn so far with its last
// percentage, so the bars can be redrawn when the surface width changes.
type ProgressBars struct {
	mu    sync.Mutex
	order []uuid.UUID
	bars  map[uuid.UUID]*progressBar
}

type progressBar struct {
	node    *screen.Node
	percent int
}

func NewProgressBars() *ProgressBars {
	return &ProgressBars{bars: make(map[uuid.UUID]*progressBar)}
}

func (r *ProgressBars) Register(n *screen.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bars[n.ID]; ok {
		return
	}
	r.order = append(r.order, n.ID)
	r.bars[n.ID] = &progressBar{node: n}
}

// Draw records percent for n and draws it under the registry lock. A
// concurrent Redraw therefore always sees the drawn percentage.
func (r *ProgressBars) Draw(n *screen.Node, percent, width int, fullscreen bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bars[n.ID]; ok {
		b.percent = percent
	}
	n.SetText(ProgressBar(width, fullscreen, percent))
}

func (r *ProgressBars) Set(n *screen.Node, percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bars[n.ID]; ok {
		b.percent = percent
	}
}

// Percent returns the last percentage recorded for n.
func (r *ProgressBars) Percent(n *screen.Node) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bars[n.ID]
	if !ok {
		return 0, false
	}
	return b.percent, true
}

func (r *ProgressBars) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *ProgressBars) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.bars = make(map[uuid.UUID]*progressBar)
}

// Redraw redraws every bar at its last percentage for the current surface
// width. Nothing is drawn while the surface has no width.
func (r *ProgressBars) Redraw(s Surface) int {
	width := s.Width()
	if width <= 0 {
		return 0
	}
	fullscreen := s.Fullscreen()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		b := r.bars[id]
		b.node.SetText(ProgressBar(width, fullscreen, b.percent))
	}
	s.ScrollToBottom()
	return len(r.order)
}

// runProgress animates node from 0 to 100 percent in Steps+1 frames spread
// over duration.
func (p *Player) runProgress(ctx context.Context, node *screen.Node, duration time.Duration) error {
	step := duration / Steps
	p.bars.Register(node)

	for i := 0; i <= Steps; i++ {
		if err := p.pause.Wait(ctx, p.clock); err != nil {
			return err
		}
		percent := i * 100 / Steps
		p.bars.Draw(node, percent, p.surface.Width(), p.surface.Fullscreen())
		p.surface.ScrollToBottom()
		if err := p.clock.Sleep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}
