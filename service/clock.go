package service

import "time"

// Clock supplies the current time in the configured zone. Injected so date
// computations are testable without the wall clock.
type Clock interface {
	Now() time.Time
}

// ZoneClock reads the wall clock in one fixed location.
type ZoneClock struct {
	loc *time.Location
}

func NewZoneClock(loc *time.Location) *ZoneClock {
	return &ZoneClock{loc: loc}
}

func (c *ZoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}
