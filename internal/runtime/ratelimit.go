package runtime

import (
	"context"
	"math"
	"time"
)

// ComputeDelay maps an operator speed onto a per-step delay. Faster speeds
// give shorter delays, linearly:
//
//	delay = minDelay + (maxSpeed-speed)/(maxSpeed-minSpeed) * (maxDelay-minDelay)
//
// Speed is clamped into range and the result is rounded to whole
// milliseconds. A degenerate speed range yields minDelay.
func ComputeDelay(speed, minSpeed, maxSpeed int, minDelay, maxDelay time.Duration) time.Duration {
	if maxSpeed <= minSpeed {
		return minDelay
	}
	speed = max(minSpeed, min(speed, maxSpeed))
	fraction := float64(maxSpeed-speed) / float64(maxSpeed-minSpeed)
	ms := (float64(minDelay) + fraction*float64(maxDelay-minDelay)) / float64(time.Millisecond)
	return time.Duration(math.Round(ms)) * time.Millisecond
}

// RateLimiter paces a run at a fixed per-step delay chosen at start.
type RateLimiter struct {
	delay time.Duration
}

// NewRateLimiter returns a limiter with a fixed delay.
func NewRateLimiter(delay time.Duration) *RateLimiter {
	return &RateLimiter{delay: max(delay, 0)}
}

// Delay returns the per-step delay.
func (l *RateLimiter) Delay() time.Duration { return l.delay }

// Await sleeps for the delay. It returns early with ctx.Err() when ctx is
// cancelled and re-checks ctx before returning.
func (l *RateLimiter) Await(ctx context.Context) error {
	if l.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(l.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	return ctx.Err()
}
