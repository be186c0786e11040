package clock

import "time"

// Clock allows deterministic time behavior in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (f FixedClock) Now() time.Time {
	return f.At
}
