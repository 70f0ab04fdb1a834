package domain

import "time"

// DailyLog is one calendar day of the duty timeline, the drawable unit
// of an ELD log sheet. Events are clipped to [00:00, 24:00) of the day
// with StartOffset rebased to the day's midnight, and their durations
// always sum to exactly 24 hours.
type DailyLog struct {
	DayIndex int
	Date     time.Time
	Events   []DutyEvent

	// Per-status duration totals over the day's events.
	Totals map[DutyStatus]time.Duration

	// Rolling-cycle on-duty time used as of the end of this day.
	CycleUsedAtEnd time.Duration
}

// TotalDriving is a convenience accessor for the day's driving total.
func (d DailyLog) TotalDriving() time.Duration { return d.Totals[Driving] }
