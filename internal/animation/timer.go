package animation

import "time"

// Timer counts elapsed time up to a fixed duration.
type Timer struct {
	Duration time.Duration
	Elapsed  time.Duration
}

func NewTimer(d time.Duration) Timer {
	return Timer{Duration: d}
}

// Tick advances the timer, stopping at Duration.
func (t *Timer) Tick(dt time.Duration) {
	t.Elapsed = min(t.Elapsed+dt, t.Duration)
}

// Fraction is the completed share of the timer in [0,1]. A zero duration
// timer is always complete.
func (t Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return float64(t.Elapsed) / float64(t.Duration)
}

func (t Timer) Finished() bool {
	return t.Elapsed >= t.Duration
}

func (t Timer) Remaining() time.Duration {
	return t.Duration - t.Elapsed
}

// Seconds converts a frame delta in seconds to a duration.
func Seconds(dt float64) time.Duration {
	return time.Duration(dt * float64(time.Second))
}
