package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_AdvanceWakesDueSleepers(t *testing.T) {
	f := NewFake()
	done := make(chan error, 1)
	go func() { done <- f.Sleep(context.Background(), 50*time.Millisecond) }()

	f.BlockUntil(1)
	f.Advance(49 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("sleeper woke early")
	case <-time.After(10 * time.Millisecond):
	}

	f.Advance(time.Millisecond)
	require.NoError(t, <-done)
	assert.Equal(t, 0, f.Sleepers())
}

func TestFake_ContextCancel(t *testing.T) {
	f := NewFake()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Sleep(ctx, time.Hour) }()

	f.BlockUntil(1)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 0, f.Sleepers())
}

func TestInstant_RecordsSleeps(t *testing.T) {
	var seen []time.Duration
	c := &Instant{OnSleep: func(d time.Duration) { seen = append(seen, d) }}

	require.NoError(t, c.Sleep(context.Background(), 10*time.Millisecond))
	require.NoError(t, c.Sleep(context.Background(), 0))

	assert.Equal(t, []time.Duration{10 * time.Millisecond, 0}, c.Slept())
	assert.Equal(t, c.Slept(), seen)
	assert.Equal(t, 10*time.Millisecond, c.Elapsed())
	assert.Equal(t, time.Time{}.Add(10*time.Millisecond), c.Now())
}

func TestReal_ZeroDuration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, Real{}.Sleep(ctx, 0))
	cancel()
	assert.ErrorIs(t, Real{}.Sleep(ctx, time.Second), context.Canceled)
}
