package services

import (
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
)

// TripLogs bundles the simulated timeline with its per-day log sheets.
type TripLogs struct {
	Events []domain.DutyEvent
	Days   []domain.DailyLog
}

// GenerateRouteLogs runs the simulator over a computed route and
// segments the result into daily logs. This is the route-based entry
// mode; the legs come from the routing collaborator.
func GenerateRouteLogs(
	legs []domain.RouteLeg,
	startCycleHours float64,
	startAt time.Time,
	lim Limits,
) (*TripLogs, error) {
	events, err := SimulateTrip(legs, startCycleHours, startAt, lim)
	if err != nil {
		return nil, fmt.Errorf("generate route logs: %w", err)
	}

	days, err := SegmentDays(events, startAt, startCycleHours, lim)
	if err != nil {
		return nil, fmt.Errorf("generate route logs: %w", err)
	}

	return &TripLogs{Events: events, Days: days}, nil
}

// GenerateDurationLogs is the duration-based entry mode for what-if
// scenarios without a real route: the total drive time is treated as a
// single zero-distance leg, which leaves the mileage/fuel rules inert.
// All other invariants apply unchanged.
func GenerateDurationLogs(
	driveDuration time.Duration,
	startCycleHours float64,
	startAt time.Time,
	lim Limits,
) (*TripLogs, error) {
	if driveDuration < 0 {
		return nil, fmt.Errorf(
			"generate duration logs: negative drive duration %s: %w",
			driveDuration, ErrInvalidInput,
		)
	}

	legs := []domain.RouteLeg{{DistanceMiles: 0, Duration: driveDuration}}
	events, err := SimulateTrip(legs, startCycleHours, startAt, lim)
	if err != nil {
		return nil, fmt.Errorf("generate duration logs: %w", err)
	}

	days, err := SegmentDays(events, startAt, startCycleHours, lim)
	if err != nil {
		return nil, fmt.Errorf("generate duration logs: %w", err)
	}

	return &TripLogs{Events: events, Days: days}, nil
}

// DeriveStops extracts the mandatory fuel, break, and rest stop markers
// from a simulated timeline, in sequence order, for persistence
// alongside a saved trip.
func DeriveStops(events []domain.DutyEvent) []domain.Stop {
	var stops []domain.Stop
	for _, ev := range events {
		var kind string
		switch ev.Annotation {
		case AnnotationFueling:
			kind = domain.StopFuel
		case AnnotationBreak:
			kind = domain.StopBreak
		case AnnotationRest, AnnotationReset:
			kind = domain.StopRest
		default:
			continue
		}
		stops = append(stops, domain.Stop{
			SequenceIndex: len(stops),
			Type:          kind,
			AtTime:        ev.StartOffset,
			Location:      ev.Location,
		})
	}
	return stops
}
