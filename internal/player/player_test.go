package player

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termreel/internal/clock"
	"termreel/internal/screen"
	"termreel/internal/script"
)

func TestPlay_InputThenOutput(t *testing.T) {
	buf := screen.NewBuffer(80)
	var frames []string
	clk := &clock.Instant{}
	clk.OnSleep = func(time.Duration) { frames = append(frames, buf.Text()) }
	p := New(buf, WithClock(clk))

	s := &script.Script{Lines: []script.Line{
		{Kind: script.KindInput, Content: []script.Content{{{Text: "ls"}}}, CharDelay: 10},
		{Kind: script.KindOutput, Content: []script.Content{{{Text: "a.txt"}}}},
	}}
	require.NoError(t, p.Play(context.Background(), s))

	assert.Equal(t, []time.Duration{SettleDelay, 10 * time.Millisecond, 10 * time.Millisecond}, clk.Slept())
	assert.Equal(t, []string{"▲ ", "▲ l", "▲ ls"}, frames)
	assert.Equal(t, "▲ ls\na.txt", buf.Text())

	attached, at := buf.Cursor().Location()
	assert.True(t, attached)
	assert.Nil(t, at, "cursor sits after the output line")
	assert.Equal(t, Status{State: StateExhausted, Line: 2, Total: 2}, p.Status())
}

func TestPlay_DisappearingInputKeepsLastMessage(t *testing.T) {
	buf := screen.NewBuffer(80)
	clk := &clock.Instant{}
	p := New(buf, WithClock(clk))

	s := &script.Script{Lines: []script.Line{{
		Kind:   script.KindDisappear,
		Prompt: ">",
		Content: []script.Content{
			{{Text: "hi", Color: "green", DeleteDelay: 4000}},
			{{Text: "Error.", Color: "red"}},
			{{Text: "bye", Color: "blue"}},
		},
		CharDelay:   5,
		DeleteDelay: 30,
		TypeDelay:   2000,
		FinishDelay: 500,
	}}}
	require.NoError(t, p.Play(context.Background(), s))
	assert.Equal(t, "> bye", buf.Text())

	want := []time.Duration{2000 * time.Millisecond, SettleDelay}
	// "hi": type, hold 4s, delete
	want = append(want, 5*time.Millisecond, 5*time.Millisecond)
	want = append(want, repeat(PollInterval, 40)...)
	want = append(want, 30*time.Millisecond, 30*time.Millisecond)
	// "Error.": type, hold 1s, delete
	for i := 0; i < 6; i++ {
		want = append(want, 5*time.Millisecond)
	}
	want = append(want, repeat(PollInterval, int(MinDeleteHold/PollInterval))...)
	for i := 0; i < 6; i++ {
		want = append(want, 30*time.Millisecond)
	}
	// "bye" stays
	want = append(want, 5*time.Millisecond, 5*time.Millisecond, 5*time.Millisecond, 500*time.Millisecond)
	assert.Equal(t, want, clk.Slept())
}

func TestPlay_EmptyInputShowsPrompt(t *testing.T) {
	buf := screen.NewBuffer(80)
	clk := &clock.Instant{}
	p := New(buf, WithClock(clk))

	s := &script.Script{Lines: []script.Line{{Kind: script.KindInput, TypeDelay: 100}}}
	require.NoError(t, p.Play(context.Background(), s))

	assert.Equal(t, []time.Duration{100 * time.Millisecond}, clk.Slept(), "no settle delay without content")
	assert.Equal(t, []string{"▲ " + screen.CursorGlyph}, buf.Lines(screen.ViewOptions{Plain: true, ShowCursor: true, BlinkOn: true}))
}

func TestPlay_MultiRowOutput(t *testing.T) {
	buf := screen.NewBuffer(80)
	p := New(buf, WithClock(&clock.Instant{}))

	s := &script.Script{Lines: []script.Line{{
		Kind: script.KindOutput,
		Content: []script.Content{
			{{Text: "first"}},
			{{Text: "second ", Color: "green"}, {Text: "link", Href: "https://example.com"}},
		},
	}}}
	require.NoError(t, p.Play(context.Background(), s))
	assert.Equal(t, "first\nsecond link", buf.Text())

	href, ok := buf.LastLink()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", href)
}

func TestPlay_ProgressDetachesCursor(t *testing.T) {
	buf := screen.NewBuffer(80)
	detached := 0
	clk := &clock.Instant{}
	clk.OnSleep = func(time.Duration) {
		if attached, _ := buf.Cursor().Location(); !attached {
			detached++
		}
	}
	p := New(buf, WithClock(clk))

	s := &script.Script{Lines: []script.Line{
		{Kind: script.KindProgress, ProgressDuration: 3000},
		{Kind: script.KindPercentage, Content: []script.Content{{{Text: "Counting objects: 0% (0/55), done."}}},
			Percentages: []script.PercentageSpec{{End: 100, Duration: 1200}, {End: 55, Duration: 1200}}},
	}}
	require.NoError(t, p.Play(context.Background(), s))

	assert.Equal(t, 2*(Steps+1), detached, "cursor is off screen while bars animate")
	attached, at := buf.Cursor().Location()
	assert.True(t, attached)
	assert.Nil(t, at)

	slept := clk.Slept()
	assert.Equal(t, time.Duration(script.DefaultAnimationTypeDelay)*time.Millisecond, slept[0])
	assert.True(t, strings.HasSuffix(buf.Text(), "\nCounting objects: 100% (55/55), done."))
	assert.Equal(t, 1, p.bars.Len())
}

func TestPlay_CancelStopsPlayback(t *testing.T) {
	buf := screen.NewBuffer(80)
	fake := clock.NewFake()
	p := New(buf, WithClock(fake))

	s := &script.Script{Lines: []script.Line{
		{Kind: script.KindInput, Content: []script.Content{{{Text: "sleep 100"}}}, TypeDelay: 60000},
		{Kind: script.KindOutput, Content: []script.Content{{{Text: "never"}}}},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Play(ctx, s) }()

	fake.BlockUntil(1)
	assert.Equal(t, Status{State: StateRendering, Line: 0, Total: 2}, p.Status())
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.NotContains(t, buf.Text(), "never")
}

func TestPlay_UnknownKindIsSkipped(t *testing.T) {
	buf := screen.NewBuffer(80)
	p := New(buf, WithClock(&clock.Instant{}))

	s := &script.Script{Lines: []script.Line{
		{Kind: "bogus"},
		{Kind: script.KindOutput, Content: []script.Content{{{Text: "ok"}}}},
	}}
	require.NoError(t, p.Play(context.Background(), s))
	assert.Equal(t, "ok", buf.Text())
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}
