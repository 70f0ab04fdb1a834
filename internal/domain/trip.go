package domain

import (
	"encoding/json"
	"time"
)

// Trip is a persisted route plan: the three stop points given by the
// caller plus the planned totals and route geometry returned by the
// routing collaborator. Timestamps are populated by the repository.
type Trip struct {
	TripID                int
	CreatedAt             time.Time
	Current               GeoPoint
	Pickup                GeoPoint
	Dropoff               GeoPoint
	CurrentCycleHoursUsed float64
	PlannedDistanceMeters float64
	PlannedDuration       time.Duration
	Geometry              json.RawMessage
}

// Stop kinds recorded for a saved trip.
const (
	StopFuel  = "fuel"
	StopBreak = "break"
	StopRest  = "rest"
)

// Stop marks a mandatory fuel, break, or rest stop along a saved trip,
// derived from the simulated duty timeline.
type Stop struct {
	TripID        int
	SequenceIndex int
	Type          string
	AtTime        time.Duration
	Location      GeoPoint
}
