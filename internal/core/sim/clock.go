package sim

// Clock advances simulated time in fixed one-minute ticks. Pure counter; it
// has no failure modes.
type Clock struct {
	tick  int
	total int
}

// NewClock creates a clock covering the given run horizon.
func NewClock(totalTicks int) *Clock {
	return &Clock{total: totalTicks}
}

// Tick returns the current tick.
func (c *Clock) Tick() int {
	return c.tick
}

// Total returns the run horizon in ticks.
func (c *Clock) Total() int {
	return c.total
}

// Done reports whether the horizon is exhausted.
func (c *Clock) Done() bool {
	return c.tick >= c.total
}

// Advance moves to the next tick. It returns false once the horizon is
// exhausted.
func (c *Clock) Advance() bool {
	if c.tick >= c.total {
		return false
	}
	c.tick++
	return c.tick < c.total
}
