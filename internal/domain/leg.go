package domain

import "time"

// Meters per statute mile, the conversion used by the routing adapter.
const MetersPerMile = 1609.34

// A single travel leg between two consecutive stop points.
// Legs are produced by the external routing collaborator and consumed
// by the simulator in fixed order; they are immutable planning data.
type RouteLeg struct {
	Origin        GeoPoint
	Destination   GeoPoint
	DistanceMiles float64
	Duration      time.Duration
}
