package services

import "time"

const day = 24 * time.Hour

// CycleAccountant tracks the rolling N-day on-duty total for one
// simulation run. On-duty time is bucketed per simulated day so that
// buckets older than the window stop counting on multi-day trips.
//
// The starting cycle hours supplied by the caller represent the
// trailing-window total at trip start; their distribution inside the
// window is unknown, so the seed counts as a block until a full window
// of simulated time has elapsed, then ages out.
//
// A CycleAccountant is owned by a single run and is not safe for
// concurrent use.
type CycleAccountant struct {
	cap    time.Duration
	window int
	seed   time.Duration
	days   map[int]time.Duration

	// phase shifts bucket indexing so buckets align with calendar days
	// rather than 24h periods from trip start. Offset of the trip start
	// instant into its own calendar day.
	phase time.Duration
}

func NewCycleAccountant(cap time.Duration, windowDays int, seed time.Duration) *CycleAccountant {
	return &CycleAccountant{
		cap:    cap,
		window: windowDays,
		seed:   seed,
		days:   make(map[int]time.Duration),
	}
}

// Used returns the on-duty total counted by the rolling window at the
// given trip offset.
func (c *CycleAccountant) Used(now time.Duration) time.Duration {
	cur := int((c.phase + now) / day)
	total := time.Duration(0)
	for idx, d := range c.days {
		if idx > cur-c.window && idx <= cur {
			total += d
		}
	}
	if now < time.Duration(c.window)*day {
		total += c.seed
	}
	return total
}

// Remaining returns how much on-duty time can still be scheduled at the
// given offset before the cap is reached.
func (c *CycleAccountant) Remaining(now time.Duration) time.Duration {
	r := c.cap - c.Used(now)
	if r < 0 {
		return 0
	}
	return r
}

// WouldExceed reports whether scheduling additional on-duty time at the
// given offset would break the cap.
func (c *CycleAccountant) WouldExceed(now, additional time.Duration) bool {
	return c.Used(now)+additional > c.cap
}

// RecordOnDuty attributes on-duty time to the day buckets it falls in,
// splitting across midnight boundaries.
func (c *CycleAccountant) RecordOnDuty(start, d time.Duration) {
	now := c.phase + start
	for d > 0 {
		idx := int(now / day)
		untilNext := time.Duration(idx+1)*day - now
		chunk := d
		if chunk > untilNext {
			chunk = untilNext
		}
		c.days[idx] += chunk
		now += chunk
		d -= chunk
	}
}

// ApplyReset zeroes the rolling total after a qualifying 34-hour-or-
// longer off-duty block. The reset clears the seed and all buckets.
func (c *CycleAccountant) ApplyReset() {
	c.seed = 0
	c.days = make(map[int]time.Duration)
}
