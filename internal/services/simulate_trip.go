package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"trip-planner-service/internal/domain"
)

// ErrInvalidInput marks malformed simulation input (negative leg
// distance or duration, starting cycle hours outside [0, cap]).
// Rejected before simulation begins; no partial timeline is produced.
var ErrInvalidInput = errors.New("invalid input")

// Annotations used on mandatory events. Exported so callers can derive
// stop markers from the timeline without re-running the rule engine.
const (
	AnnotationPickup  = "Pickup"
	AnnotationDropoff = "Drop-off"
	AnnotationDriving = "Driving"
	AnnotationFueling = "Fueling"
	AnnotationBreak   = "30-min break"
	AnnotationRest    = "10-hour rest"
	AnnotationReset   = "34-hour reset"
)

// simState holds the hours-of-service counters for one simulation run.
// A fresh instance is built per run and never shared; the simulator is
// a pure function of its inputs.
type simState struct {
	lim   Limits
	cycle *CycleAccountant

	clock  time.Duration
	loc    domain.GeoPoint
	events []domain.DutyEvent

	drivingToday   time.Duration
	windowOpen     bool
	windowStart    time.Duration
	sinceBreak     time.Duration
	milesSinceFuel float64
}

// SimulateTrip walks the legs in order and emits the complete,
// contiguous duty timeline for the trip: a fixed pickup block, driving
// split by every mandatory break, fuel stop, rest, or cycle reset the
// rules require, and a fixed drop-off block.
//
// Constraints are evaluated before every schedulable increment in
// priority order: cycle cap, duty window, daily driving cap, mileage
// since fuel, continuous driving. The first violated constraint decides
// the inserted event, so simultaneous violations resolve toward the
// safety-critical limits.
//
// startAt anchors the rolling-cycle day buckets to calendar days; the
// emitted offsets are relative to startAt.
func SimulateTrip(
	legs []domain.RouteLeg,
	startCycleHours float64,
	startAt time.Time,
	lim Limits,
) ([]domain.DutyEvent, error) {
	if startCycleHours < 0 || startCycleHours > lim.CycleCap.Hours() {
		return nil, fmt.Errorf(
			"simulate trip: starting cycle hours %.2f outside [0, %.0f]: %w",
			startCycleHours, lim.CycleCap.Hours(), ErrInvalidInput,
		)
	}

	for i, leg := range legs {
		if leg.DistanceMiles < 0 || leg.Duration < 0 {
			return nil, fmt.Errorf(
				"simulate trip: leg %d has distance=%.2fmi duration=%s: %w",
				i, leg.DistanceMiles, leg.Duration, ErrInvalidInput,
			)
		}
	}

	seed := time.Duration(startCycleHours * float64(time.Hour))
	s := &simState{
		lim:   lim,
		cycle: NewCycleAccountant(lim.CycleCap, lim.CycleDays, seed),
	}
	// Align the accountant's day buckets with calendar midnights.
	s.cycle.phase = dayPhase(startAt)

	if len(legs) > 0 {
		s.loc = legs[0].Origin
	}
	s.scheduleOnDuty(lim.PickupDuration, AnnotationPickup)

	for i, leg := range legs {
		s.loc = leg.Origin
		if err := s.driveLeg(i, leg); err != nil {
			return nil, err
		}
		s.loc = leg.Destination
	}

	s.scheduleOnDuty(lim.DropoffDuration, AnnotationDropoff)

	return s.events, nil
}

// dayPhase returns how far into its calendar day the instant falls.
func dayPhase(t time.Time) time.Duration {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.Sub(midnight)
}

// driveLeg schedules the leg's drive time as one or more Driving events,
// inserting whichever mandatory event the highest-priority violated
// constraint requires before the drive resumes.
func (s *simState) driveLeg(index int, leg domain.RouteLeg) error {
	remaining := leg.Duration

	// Zero-duration legs contribute no events; zero-distance legs make
	// the mileage rule inert (speed 0, duration-only entry mode).
	var milesPerSecond float64
	if leg.Duration > 0 {
		milesPerSecond = leg.DistanceMiles / leg.Duration.Seconds()
	}

	for remaining > 0 {
		chunk := remaining

		cycleRem := s.cycle.Remaining(s.clock)
		if cycleRem <= 0 {
			s.emit(domain.OffDuty, s.lim.CycleReset, AnnotationReset)
			continue
		}
		if cycleRem < chunk {
			chunk = cycleRem
		}

		windowRem := s.lim.DutyWindow
		if s.windowOpen {
			windowRem = s.windowStart + s.lim.DutyWindow - s.clock
		}
		if windowRem <= 0 {
			s.emit(domain.OffDuty, s.lim.DailyRest, AnnotationRest)
			continue
		}
		if windowRem < chunk {
			chunk = windowRem
		}

		driveRem := s.lim.MaxDrivingPerDay - s.drivingToday
		if driveRem <= 0 {
			s.emit(domain.OffDuty, s.lim.DailyRest, AnnotationRest)
			continue
		}
		if driveRem < chunk {
			chunk = driveRem
		}

		if milesPerSecond > 0 {
			// Legs arrive in whole seconds; align the fuel split to whole
			// seconds too so float noise cannot shave the chunk.
			fuelRem := secondsToDuration(math.Round((s.lim.FuelIntervalMiles - s.milesSinceFuel) / milesPerSecond))
			if fuelRem <= 0 {
				s.scheduleOnDuty(s.lim.FuelStopDuration, AnnotationFueling)
				s.milesSinceFuel = 0
				continue
			}
			if fuelRem < chunk {
				chunk = fuelRem
			}
		}

		breakRem := s.lim.DrivingBeforeBreak - s.sinceBreak
		if breakRem <= 0 {
			s.emit(domain.OffDuty, s.lim.BreakDuration, AnnotationBreak)
			continue
		}
		if breakRem < chunk {
			chunk = breakRem
		}

		if chunk <= 0 {
			// Unreachable with positive capacities above; guards against
			// a counter update bug turning into an endless loop.
			return fmt.Errorf(
				"simulate trip: leg %d stalled at offset %s (drivingToday=%s sinceBreak=%s milesSinceFuel=%.1f cycleUsed=%s)",
				index, s.clock, s.drivingToday, s.sinceBreak, s.milesSinceFuel, s.cycle.Used(s.clock),
			)
		}

		s.emit(domain.Driving, chunk, AnnotationDriving)
		s.milesSinceFuel += milesPerSecond * chunk.Seconds()
		remaining -= chunk
	}

	return nil
}

// scheduleOnDuty emits a fixed-length on-duty-not-driving block,
// inserting a cycle reset or daily rest first if the block would not
// fit the cycle cap or the open duty window.
func (s *simState) scheduleOnDuty(d time.Duration, annotation string) {
	if d <= 0 {
		return
	}
	for {
		if s.cycle.WouldExceed(s.clock, d) {
			s.emit(domain.OffDuty, s.lim.CycleReset, AnnotationReset)
			continue
		}
		if s.windowOpen && s.clock+d > s.windowStart+s.lim.DutyWindow {
			s.emit(domain.OffDuty, s.lim.DailyRest, AnnotationRest)
			continue
		}
		s.emit(domain.OnDutyNotDriving, d, annotation)
		return
	}
}

// emit appends one event at the current clock and folds its effect into
// the counters.
func (s *simState) emit(status domain.DutyStatus, d time.Duration, annotation string) {
	s.events = append(s.events, domain.DutyEvent{
		Status:      status,
		StartOffset: s.clock,
		Duration:    d,
		Location:    s.loc,
		Annotation:  annotation,
	})

	switch status {
	case domain.Driving:
		if !s.windowOpen {
			s.windowOpen = true
			s.windowStart = s.clock
		}
		s.cycle.RecordOnDuty(s.clock, d)
		s.drivingToday += d
		s.sinceBreak += d

	case domain.OnDutyNotDriving:
		if !s.windowOpen {
			s.windowOpen = true
			s.windowStart = s.clock
		}
		s.cycle.RecordOnDuty(s.clock, d)
		if d >= s.lim.BreakDuration {
			s.sinceBreak = 0
		}

	case domain.OffDuty, domain.SleeperBerth:
		if d >= s.lim.BreakDuration {
			s.sinceBreak = 0
		}
		if d >= s.lim.DailyRest {
			s.drivingToday = 0
			s.windowOpen = false
		}
		if d >= s.lim.CycleReset {
			s.cycle.ApplyReset()
		}
	}

	s.clock += d
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
