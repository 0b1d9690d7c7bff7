// Package frame paces the render loop.
package frame

import "github.com/chewxy/math32"

// Limiter decides which animation frames advance the scene. With a cap, elapsed time
// accumulates until it exceeds the interval; the remainder modulo the interval carries
// into the next frame so the average rate does not drift. Without a cap every frame advances.
type Limiter struct {
	interval float32 // seconds; 0 means uncapped
	acc      float32
}

// NewLimiter returns a limiter for at most fps advances per second. fps <= 0 disables the cap.
func NewLimiter(fps float32) *Limiter {
	l := &Limiter{}
	if fps > 0 {
		l.interval = 1 / fps
	}
	return l
}

// Capped reports whether a frame-rate cap is configured.
func (l *Limiter) Capped() bool {
	return l.interval > 0
}

// Interval is the minimum time between advances in seconds, 0 when uncapped.
func (l *Limiter) Interval() float32 {
	return l.interval
}

// Step adds dt seconds. It returns whether this frame advances and the delta to report
// to the tick: the accumulated time for capped loops, dt otherwise.
func (l *Limiter) Step(dt float32) (advance bool, delta float32) {
	if l.interval == 0 {
		return true, dt
	}
	l.acc += dt
	if l.acc <= l.interval {
		return false, l.acc
	}
	delta = l.acc
	l.acc = math32.Mod(l.acc, l.interval)
	return true, delta
}

// Pending is the accumulated time not yet consumed by an advance.
func (l *Limiter) Pending() float32 {
	return l.acc
}
