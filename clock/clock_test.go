package clock

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestCountReportsOncePerSecond(t *testing.T) {
	l := New(60)
	start := time.Unix(1000, 0)

	// 61 frames 1/60 s apart: the 61st closes the first whole second.
	for i := 0; i < 60; i++ {
		l.count(start.Add(time.Duration(i) * time.Second / 60))
		_, updated := l.FPS()
		assert.False(t, updated, "frame %d", i)
	}
	l.count(start.Add(time.Second))

	fps, updated := l.FPS()
	assert.True(t, updated)
	assert.Equal(t, 61, fps)

	fps, updated = l.FPS()
	assert.False(t, updated)
	assert.Equal(t, 61, fps)
}

func TestTickThrottles(t *testing.T) {
	l := New(100)
	start := time.Now()
	for i := 0; i < 6; i++ {
		l.Tick()
	}
	// The first tick is free; the remaining five each wait ~10ms.
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestTickLogsLimiterError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := New(60)
	l.limiter = rate.NewLimiter(60, 0)
	l.Tick()

	assert.Contains(t, buf.String(), "Frame limiter")
	_, updated := l.FPS()
	assert.False(t, updated)
	assert.Equal(t, 1, l.frames, "the frame is still counted")
}
