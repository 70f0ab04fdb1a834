package services

import "time"

// Limits holds the hours-of-service thresholds for a property-carrying
// driver on the 70-hours/8-days cycle. All regulatory durations live
// here so simulations can be run against adjusted values in tests or
// what-if scenarios.
type Limits struct {
	// Maximum driving time per duty day.
	MaxDrivingPerDay time.Duration
	// Span from the first on-duty event of a day in which driving is
	// permitted.
	DutyWindow time.Duration
	// Rolling on-duty cap over the trailing CycleDays days.
	CycleCap  time.Duration
	CycleDays int
	// Continuous driving allowed before a qualifying break, and the
	// break length itself. Any non-driving event at least BreakDuration
	// long qualifies.
	DrivingBeforeBreak time.Duration
	BreakDuration      time.Duration
	// Off-duty block that closes a duty day and restores the daily
	// driving and duty-window counters.
	DailyRest time.Duration
	// Off-duty block that zeroes the rolling cycle.
	CycleReset time.Duration
	// Miles driven between fuel stops, and the on-duty time a stop takes.
	FuelIntervalMiles float64
	FuelStopDuration  time.Duration
	// Fixed on-duty service time at the trip endpoints.
	PickupDuration  time.Duration
	DropoffDuration time.Duration
}

// DefaultLimits returns the standard property-carrier thresholds.
func DefaultLimits() Limits {
	return Limits{
		MaxDrivingPerDay:   11 * time.Hour,
		DutyWindow:         14 * time.Hour,
		CycleCap:           70 * time.Hour,
		CycleDays:          8,
		DrivingBeforeBreak: 8 * time.Hour,
		BreakDuration:      30 * time.Minute,
		DailyRest:          10 * time.Hour,
		CycleReset:         34 * time.Hour,
		FuelIntervalMiles:  1000,
		FuelStopDuration:   30 * time.Minute,
		PickupDuration:     time.Hour,
		DropoffDuration:    time.Hour,
	}
}

// Violation identifies the highest-priority constraint that blocks the
// next schedulable increment. Ordering is the resolution priority:
// safety-cycle limits take precedence over efficiency concerns like
// fueling.
type Violation int

const (
	NoViolation Violation = iota
	CycleLimit
	DutyWindowClosed
	DrivingCapReached
	MileageLimit
	ContinuousDriving
)

func (v Violation) String() string {
	switch v {
	case NoViolation:
		return "none"
	case CycleLimit:
		return "cycle_limit"
	case DutyWindowClosed:
		return "duty_window"
	case DrivingCapReached:
		return "driving_cap"
	case MileageLimit:
		return "mileage_limit"
	case ContinuousDriving:
		return "continuous_driving"
	default:
		return "unknown"
	}
}
