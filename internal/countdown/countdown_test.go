package countdown

import (
	"bytes"
	"log"
	"testing"

	"countdown_tui/internal/timefmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	progress []int
	complete []bool
}

func newCountdown(t *testing.T, seconds int, rec *recorder) *Countdown {
	t.Helper()
	c, err := New(Options{
		Seconds:    seconds,
		Format:     timefmt.MS,
		OnProgress: func(r int) { rec.progress = append(rec.progress, r) },
		OnComplete: func(done bool) { rec.complete = append(rec.complete, done) },
	})
	require.NoError(t, err)
	return c
}

func TestCompletionFiresOnce(t *testing.T) {
	rec := &recorder{}
	c := newCountdown(t, 3, rec)
	assert.Equal(t, Running, c.State())

	for i := 0; i < 3; i++ {
		c.Tick()
	}
	assert.Equal(t, JustCompleted, c.State())
	assert.Empty(t, rec.complete)

	c.Tick()
	assert.Equal(t, []bool{true}, rec.complete)
	assert.Equal(t, Completed, c.State())

	c.Tick()
	c.Tick()
	assert.Equal(t, []bool{true}, rec.complete)
	assert.Equal(t, []int{2, 1, 0}, rec.progress)
}

func TestProgressStrictlyDecreasing(t *testing.T) {
	rec := &recorder{}
	c := newCountdown(t, 10, rec)
	for i := 0; i < 15; i++ {
		c.Tick()
	}
	require.Len(t, rec.progress, 10)
	for i, v := range rec.progress {
		assert.Equal(t, 9-i, v)
	}
}

func TestDisplayAfterTick(t *testing.T) {
	rec := &recorder{}
	c := newCountdown(t, 61, rec)
	assert.Equal(t, "00:00", c.Display())

	assert.Equal(t, "1:00", c.Tick())
	assert.Equal(t, "0:59", c.Tick())
	assert.Equal(t, "0:59", c.Display())
}

func TestResetMidRun(t *testing.T) {
	rec := &recorder{}
	c := newCountdown(t, 3, rec)
	c.Tick()
	c.Tick()
	assert.Equal(t, 1, c.Remaining())

	c.Reset()
	assert.Equal(t, 3, c.Remaining())
	assert.Equal(t, "0:01", c.Display())

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	assert.Equal(t, []int{2, 1, 2, 1, 0}, rec.progress)
	assert.Equal(t, []bool{true}, rec.complete)
}

func TestResetAfterCompletionRearms(t *testing.T) {
	rec := &recorder{}
	c := newCountdown(t, 1, rec)
	c.Tick()
	c.Tick()
	assert.Equal(t, Completed, c.State())

	c.Reset()
	assert.Equal(t, Running, c.State())
	assert.False(t, c.CompletionFired())
	c.Tick()
	c.Tick()
	c.Tick()
	assert.Equal(t, []bool{true, true}, rec.complete)
}

func TestResetFromCallback(t *testing.T) {
	var c *Countdown
	runs := 0
	c, err := New(Options{
		Seconds: 1,
		OnComplete: func(bool) {
			runs++
			if runs < 2 {
				c.Reset()
			}
		},
	})
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		c.Tick()
	}
	assert.Equal(t, 2, runs)
}

func TestZeroSecondsStartsJustCompleted(t *testing.T) {
	rec := &recorder{}
	c := newCountdown(t, 0, rec)
	assert.Equal(t, JustCompleted, c.State())
	assert.Equal(t, "0:00", c.Tick())
	assert.Equal(t, []bool{true}, rec.complete)
	assert.Empty(t, rec.progress)
}

func TestMissingCallbacks(t *testing.T) {
	var buf bytes.Buffer
	c, err := New(Options{Seconds: 1, Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)

	assert.Equal(t, "", c.Tick())
	assert.Empty(t, buf.String())

	c.Tick()
	assert.Contains(t, buf.String(), "no completion callback")

	buf.Reset()
	c.Tick()
	assert.Empty(t, buf.String())
}

func TestNegativeSecondsRejected(t *testing.T) {
	_, err := New(Options{Seconds: -1})
	assert.ErrorIs(t, err, ErrNegativeSeconds)
}
