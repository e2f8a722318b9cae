package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termreel/internal/clock"
	"termreel/internal/screen"
	"termreel/internal/script"
)

// frameRecorder captures the text of a node every time the player sleeps,
// which is exactly once after every rendered frame.
func frameRecorder(node **screen.Node) (*clock.Instant, *[]string) {
	frames := &[]string{}
	c := &clock.Instant{}
	c.OnSleep = func(time.Duration) {
		if *node != nil {
			*frames = append(*frames, (*node).Text())
		}
	}
	return c, frames
}

func TestTypeContent_RevealsThenDeletesSymmetrically(t *testing.T) {
	buf := screen.NewBuffer(80)
	node := buf.NewNode(screen.LineNode)
	clk, frames := frameRecorder(&node)
	p := New(buf, WithClock(clk))

	content := script.Content{
		{Text: "I'm a ", Color: "blue"},
		{Text: "design lover", Color: "purple"},
		{Text: ".", Color: "blue", DeleteDelay: 3000},
	}
	full := []rune(content.Text())
	n := len(full)

	err := p.typeContent(context.Background(), node, content, 10*time.Millisecond, true, 5*time.Millisecond)
	require.NoError(t, err)

	// n typing frames, the 3s hold in poll slices, n deletion frames
	holdFrames := int(3 * time.Second / PollInterval)
	require.Len(t, *frames, 2*n+holdFrames)
	for k := 1; k <= n; k++ {
		assert.Equal(t, string(full[:k]), (*frames)[k-1])
	}
	for h := 0; h < holdFrames; h++ {
		assert.Equal(t, string(full), (*frames)[n+h])
	}
	for j := 0; j < n; j++ {
		remaining := n - 1 - j
		got := (*frames)[n+holdFrames+j]
		assert.Equal(t, string(full[:remaining]), got)
		if remaining > 0 {
			assert.Equal(t, (*frames)[remaining-1], got, "deletion mirrors typing")
		}
	}
	assert.Equal(t, "", node.Text())

	slept := clk.Slept()
	assert.Equal(t, 10*time.Millisecond, slept[0])
	var held time.Duration
	for _, d := range slept[n : n+holdFrames] {
		assert.Equal(t, PollInterval, d)
		held += d
	}
	assert.Equal(t, 3000*time.Millisecond, held, "hold uses the largest run delete delay")
	assert.Equal(t, 5*time.Millisecond, slept[len(slept)-1])
}

func TestTypeContent_HoldIsAtLeastOneSecond(t *testing.T) {
	assert.Equal(t, MinDeleteHold, deleteHold(script.Content{{Text: "a", DeleteDelay: 200}}))
	assert.Equal(t, 4*time.Second, deleteHold(script.Content{{Text: "a"}, {Text: "b", DeleteDelay: 4000}}))
}

func TestTypeContent_CursorFollowsText(t *testing.T) {
	buf := screen.NewBuffer(80)
	node := buf.NewNode(screen.LineNode)
	buf.Append(node)

	var typing []bool
	clk := &clock.Instant{OnSleep: func(time.Duration) {
		attached, at := buf.Cursor().Location()
		assert.True(t, attached)
		assert.Same(t, node, at)
		typing = append(typing, buf.Cursor().Typing())
	}}
	p := New(buf, WithClock(clk))

	require.NoError(t, p.typeContent(context.Background(), node, script.Content{{Text: "ls"}}, time.Millisecond, false, 0))
	assert.Equal(t, []bool{true, true}, typing)
	assert.False(t, buf.Cursor().Typing())
	assert.Equal(t, []string{"ls" + screen.CursorGlyph}, buf.Lines(screen.ViewOptions{Plain: true, ShowCursor: true, BlinkOn: true}))
}

func TestTypeContent_PauseHaltsAndResumes(t *testing.T) {
	buf := screen.NewBuffer(80)
	node := buf.NewNode(screen.LineNode)
	fake := clock.NewFake()
	p := New(buf, WithClock(fake))
	step := 10 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		done <- p.typeContent(context.Background(), node, script.Content{{Text: "hello"}}, step, false, 0)
	}()

	fake.BlockUntil(1)
	assert.Equal(t, "h", node.Text())
	fake.Advance(step)
	fake.BlockUntil(1)
	assert.Equal(t, "he", node.Text())

	p.Pause().Set(ReasonHidden, true)
	for i := 0; i < 5; i++ {
		fake.Advance(PollInterval)
		fake.BlockUntil(1)
		assert.Equal(t, "he", node.Text(), "no characters while paused")
	}

	p.Pause().Set(ReasonHidden, false)
	fake.Advance(PollInterval)
	fake.BlockUntil(1)
	assert.Equal(t, "hel", node.Text(), "resumes exactly where it stopped")

	for _, want := range []string{"hell", "hello"} {
		fake.Advance(step)
		fake.BlockUntil(1)
		assert.Equal(t, want, node.Text())
	}
	fake.Advance(step)
	require.NoError(t, <-done)
	assert.Equal(t, "hello", node.Text())
}

func TestTypeContent_Cancelled(t *testing.T) {
	buf := screen.NewBuffer(80)
	node := buf.NewNode(screen.LineNode)
	fake := clock.NewFake()
	p := New(buf, WithClock(fake))
	p.Pause().Set(ReasonUser, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.typeContent(ctx, node, script.Content{{Text: "x"}}, time.Millisecond, false, 0)
	}()

	fake.BlockUntil(1)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, "", node.Text())
}

func TestPause_Reasons(t *testing.T) {
	var p Pause
	assert.False(t, p.Paused())

	p.Set(ReasonHidden, true)
	assert.True(t, p.Toggle(ReasonUser))
	p.Set(ReasonHidden, false)
	assert.True(t, p.Paused(), "user pause still holds")
	assert.False(t, p.Toggle(ReasonUser))
	assert.False(t, p.Paused())
}

func TestTypeContent_HoldStopsWhilePaused(t *testing.T) {
	buf := screen.NewBuffer(80)
	node := buf.NewNode(screen.LineNode)
	fake := clock.NewFake()
	p := New(buf, WithClock(fake))
	step := 10 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		content := script.Content{{Text: "hi", DeleteDelay: 4000}}
		done <- p.typeContent(context.Background(), node, content, step, true, 5*time.Millisecond)
	}()

	fake.BlockUntil(1)
	fake.Advance(step)
	fake.BlockUntil(1)
	fake.Advance(step)
	fake.BlockUntil(1)
	assert.Equal(t, "hi", node.Text(), "first hold slice")

	p.Pause().Set(ReasonHidden, true)
	for i := 0; i < 60; i++ {
		fake.Advance(PollInterval)
		fake.BlockUntil(1)
	}
	assert.Equal(t, "hi", node.Text())

	p.Pause().Set(ReasonHidden, false)
	// the first advance ends the pause poll, the next 39 run the owed slices
	for i := 0; i < 39; i++ {
		fake.Advance(PollInterval)
		fake.BlockUntil(1)
		assert.Equal(t, "hi", node.Text(), "slice %d", i)
	}
	fake.Advance(PollInterval)
	fake.BlockUntil(1)
	assert.Equal(t, "h", node.Text(), "deletion starts once the full hold has run")

	fake.Advance(5 * time.Millisecond)
	fake.BlockUntil(1)
	fake.Advance(5 * time.Millisecond)
	require.NoError(t, <-done)
	assert.Equal(t, "", node.Text())
}

func TestTypeContent_ScrollsEveryFrame(t *testing.T) {
	buf := screen.NewBuffer(20)
	node := buf.NewNode(screen.LineNode)
	buf.Append(node)
	buf.TakeScroll()

	var frames, scrolled int
	clk := &clock.Instant{OnSleep: func(time.Duration) {
		frames++
		if buf.TakeScroll() {
			scrolled++
		}
	}}
	p := New(buf, WithClock(clk))

	text := "git clone https://github.com/example/termreel"
	require.NoError(t, p.typeContent(context.Background(), node, script.Content{{Text: text}}, time.Millisecond, false, 0))
	assert.Equal(t, len(text), frames)
	assert.Equal(t, frames, scrolled)
}
