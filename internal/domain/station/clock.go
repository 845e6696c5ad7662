package station

import "time"

// Clock is the accounting cursor. LastAccounted only moves forward one tick
// at a time, together with the tick's effects.
type Clock struct {
	LastAccounted time.Time `json:"last_accounted"`
}

func NewClock(start time.Time) Clock {
	return Clock{LastAccounted: start.UTC()}
}

// Due returns how many whole ticks fit between the cursor and now, and the
// time left over.
func (c Clock) Due(now time.Time, tick time.Duration) (int64, time.Duration) {
	if tick <= 0 {
		return 0, 0
	}
	elapsed := now.Sub(c.LastAccounted)
	if elapsed < 0 {
		return 0, 0
	}
	return int64(elapsed / tick), elapsed % tick
}

// NextTickIn is the wait until the next tick becomes due.
func (c Clock) NextTickIn(now time.Time, tick time.Duration) time.Duration {
	due, rem := c.Due(now, tick)
	if due > 0 {
		return 0
	}
	if now.Before(c.LastAccounted) {
		return c.LastAccounted.Sub(now) + tick
	}
	return tick - rem
}

func (c *Clock) advance(tick time.Duration) {
	c.LastAccounted = c.LastAccounted.Add(tick)
}

// Reset rewinds the cursor for a new game.
func (c *Clock) Reset(now time.Time) {
	c.LastAccounted = now.UTC()
}
