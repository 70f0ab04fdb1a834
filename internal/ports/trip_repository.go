package ports

import (
	"context"
	"errors"

	"trip-planner-service/internal/domain"
)

// ErrTripNotFound is returned when a trip id does not exist.
var ErrTripNotFound = errors.New("trip not found")

// DayLogSheet is a persisted per-day log: the day index within the trip
// and the serialized sheet handed back to clients.
type DayLogSheet struct {
	DayIndex int
	Sheet    []byte
}

// Port: a boundary for persisting and retrieving planned trips, their
// mandatory stops, and generated daily logs. The core engine never
// touches this; it is handed leg/cycle data and returns logs.
type TripRepository interface {
	// SaveTrip stores the trip with its stops and log sheets, returning
	// the assigned trip id.
	SaveTrip(ctx context.Context, trip *domain.Trip, stops []domain.Stop, sheets []DayLogSheet) (int, error)
	// GetTrip retrieves one trip by id.
	GetTrip(ctx context.Context, tripID int) (*domain.Trip, error)
	// ListTrips returns all saved trips, newest first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
}
