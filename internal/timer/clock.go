package timer

import "time"

// Clock abstracts wall time so countdowns can be driven deterministically
// in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
