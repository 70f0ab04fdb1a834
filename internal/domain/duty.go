package domain

import "time"

// Driver duty status. Values map to the four rows on a standard
// driver's log sheet: 1 Off Duty, 2 Sleeper Berth, 3 Driving,
// 4 On Duty (not driving). Exactly one status is active at any
// simulated instant.
type DutyStatus int

const (
	OffDuty DutyStatus = iota + 1
	SleeperBerth
	Driving
	OnDutyNotDriving
)

func (s DutyStatus) String() string {
	switch s {
	case OffDuty:
		return "off_duty"
	case SleeperBerth:
		return "sleeper_berth"
	case Driving:
		return "driving"
	case OnDutyNotDriving:
		return "on_duty_not_driving"
	default:
		return "unknown"
	}
}

// IsOnDuty reports whether the status counts toward the rolling cycle
// (driving and on-duty-not-driving time).
func (s DutyStatus) IsOnDuty() bool {
	return s == Driving || s == OnDutyNotDriving
}

// DutyEvent is one interval of the simulated duty timeline.
// StartOffset is measured from the trip start instant, except inside a
// DailyLog where events are rebased to that day's midnight.
// Events are immutable once emitted by the simulator.
type DutyEvent struct {
	Status      DutyStatus
	StartOffset time.Duration
	Duration    time.Duration
	Location    GeoPoint
	Annotation  string
}

// End returns the offset at which the event finishes.
func (e DutyEvent) End() time.Duration { return e.StartOffset + e.Duration }
