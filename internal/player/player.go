// Package player plays a script on a surface: it types input lines, prints
// output, animates progress bars and percentage counters, and erases
// transient banners, one line at a time.
package player

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"termreel/internal/clock"
	"termreel/internal/render"
	"termreel/internal/screen"
	"termreel/internal/script"
)

type State int32

const (
	StateIdle State = iota
	StateRendering
	StateAdvancing
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateAdvancing:
		return "advancing"
	case StateExhausted:
		return "done"
	}
	return "unknown"
}

// Status is a snapshot of where playback is.
type Status struct {
	State State
	// Line is the zero-based index of the current line.
	Line  int
	Total int
}

// Player plays scripts on one surface, one line at a time.
type Player struct {
	surface Surface
	clock   clock.Clock
	pause   *Pause
	bars    *ProgressBars
	random  func() float64
	log     *slog.Logger

	state atomic.Int32
	line  atomic.Int32
	total atomic.Int32
}

// Option configures a Player.
type Option func(*Player)

func WithClock(c clock.Clock) Option {
	return func(p *Player) { p.clock = c }
}

func WithPause(pause *Pause) Option {
	return func(p *Player) { p.pause = pause }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Player) { p.log = l }
}

// WithRand sets the source of the simulated network speed.
func WithRand(r *rand.Rand) Option {
	return func(p *Player) { p.random = r.Float64 }
}

// New returns a player drawing on surface with a real clock, its own pause
// signal and the default logger unless opts say otherwise.
func New(surface Surface, opts ...Option) *Player {
	p := &Player{
		surface: surface,
		clock:   clock.Real{},
		pause:   &Pause{},
		bars:    NewProgressBars(),
		random:  rand.Float64,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pause returns the signal every engine of p waits on.
func (p *Player) Pause() *Pause {
	return p.pause
}

func (p *Player) Status() Status {
	return Status{
		State: State(p.state.Load()),
		Line:  int(p.line.Load()),
		Total: int(p.total.Load()),
	}
}

// RedrawProgress redraws every progress bar for the current surface width.
func (p *Player) RedrawProgress() int {
	return p.bars.Redraw(p.surface)
}

// Reset forgets the progress bars of a previous run.
func (p *Player) Reset() {
	p.bars.Reset()
	p.state.Store(int32(StateIdle))
	p.line.Store(0)
}

func (p *Player) setStatus(s State, line int) {
	p.line.Store(int32(line))
	p.state.Store(int32(s))
}

// Play renders every line of s in order. Each line finishes animating, and
// waits its finish delay, before the next one starts. Play only returns an
// error when ctx is cancelled; a malformed line is logged and skipped.
func (p *Player) Play(ctx context.Context, s *script.Script) error {
	p.total.Store(int32(len(s.Lines)))
	p.log.Debug("playback started", slog.Int("lines", len(s.Lines)), slog.String("title", s.Title))

	p.surface.Cursor().AttachEnd()
	p.surface.ScrollToBottom()

	for i, line := range s.Lines {
		p.setStatus(StateRendering, i)
		if err := p.playLine(ctx, line); err != nil {
			return err
		}

		p.setStatus(StateAdvancing, i)
		if line.FinishDelay > 0 {
			if err := p.clock.Sleep(ctx, ms(line.FinishDelay)); err != nil {
				return err
			}
		}
	}

	p.setStatus(StateExhausted, len(s.Lines))
	p.log.Debug("playback finished")
	return nil
}

func (p *Player) playLine(ctx context.Context, line script.Line) error {
	switch line.Kind {
	case script.KindInput, script.KindDisappear:
		return p.playInput(ctx, line)
	case script.KindProgress:
		return p.playProgress(ctx, line)
	case script.KindPercentage:
		return p.playPercentage(ctx, line)
	case script.KindOutput:
		p.playOutput(line)
		return nil
	}
	p.log.Warn("skipping line of unknown kind", slog.String("kind", string(line.Kind)))
	return nil
}

func (p *Player) playInput(ctx context.Context, line script.Line) error {
	cursor := p.surface.Cursor()
	node := p.surface.NewNode(screen.LineNode)
	node.SetPrompt(line.PromptText())
	cursor.Attach(node)
	p.surface.Append(node)
	p.surface.ScrollToBottom()

	if line.TypeDelay > 0 {
		if err := p.clock.Sleep(ctx, ms(line.TypeDelay)); err != nil {
			return err
		}
	}
	if len(line.Content) == 0 {
		return nil
	}
	if err := p.clock.Sleep(ctx, SettleDelay); err != nil {
		return err
	}

	last := len(line.Content) - 1
	for i, c := range line.Content {
		erase := line.Kind == script.KindDisappear && i < last
		if err := p.typeContent(ctx, node, c, ms(line.CharDelayMs()), erase, ms(line.DeleteDelayMs())); err != nil {
			return err
		}
	}
	p.surface.ScrollToBottom()
	return nil
}

func (p *Player) playProgress(ctx context.Context, line script.Line) error {
	if err := p.clock.Sleep(ctx, ms(line.AnimationTypeDelayMs())); err != nil {
		return err
	}

	cursor := p.surface.Cursor()
	node := p.surface.NewNode(screen.ProgressNode)
	cursor.Detach()
	p.surface.Append(node)
	p.surface.ScrollToBottom()

	if err := p.runProgress(ctx, node, ms(line.ProgressDurationMs())); err != nil {
		return err
	}

	cursor.AttachEnd()
	p.surface.ScrollToBottom()
	return nil
}

func (p *Player) playPercentage(ctx context.Context, line script.Line) error {
	if err := p.clock.Sleep(ctx, ms(line.AnimationTypeDelayMs())); err != nil {
		return err
	}

	cursor := p.surface.Cursor()
	node := p.surface.NewNode(screen.LineNode)
	cursor.Detach()
	p.surface.Append(node)

	switch {
	case len(line.Content) != 1:
		p.log.Warn("percentage line needs exactly one content value", slog.Int("got", len(line.Content)))
	case len(line.Percentages) == 0:
		node.SetText(line.Content[0].Text())
	default:
		if err := p.runPercentages(ctx, node, line.Content[0].Text(), line.Percentages); err != nil {
			return err
		}
	}

	cursor.AttachEnd()
	p.surface.ScrollToBottom()
	return nil
}

// playOutput prints every content value at once, one row each.
func (p *Player) playOutput(line script.Line) {
	cursor := p.surface.Cursor()
	node := p.surface.NewNode(screen.LineNode)
	rows := make([][]render.Segment, len(line.Content))
	for i, c := range line.Content {
		rows[i] = render.All(c)
	}
	node.SetRows(rows)

	cursor.Detach()
	p.surface.Append(node)
	cursor.AttachEnd()
	p.surface.ScrollToBottom()
}
