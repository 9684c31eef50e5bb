// Package clock paces a frame loop at a fixed rate and measures the rate
// actually achieved.
package clock

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"
)

// Limiter blocks each Tick until the next frame boundary.
type Limiter struct {
	limiter *rate.Limiter
	now     func() time.Time

	windowStart time.Time
	frames      int
	fps         int
	updated     bool
}

// New returns a Limiter targeting fps frames per second.
func New(fps int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		now:     time.Now,
	}
}

// Tick waits for the next frame slot, then counts the frame.
func (l *Limiter) Tick() {
	if err := l.limiter.Wait(context.Background()); err != nil {
		log.Printf("Frame limiter: %v", err)
	}
	l.count(l.now())
}

func (l *Limiter) count(now time.Time) {
	if l.windowStart.IsZero() {
		l.windowStart = now
	}
	l.frames++
	if elapsed := now.Sub(l.windowStart); elapsed >= time.Second {
		l.fps = int(float64(l.frames) / elapsed.Seconds())
		l.frames = 0
		l.windowStart = now
		l.updated = true
	}
}

func (l *Limiter) FPS() (int, bool) {
	updated := l.updated
	l.updated = false
	return l.fps, updated
}
