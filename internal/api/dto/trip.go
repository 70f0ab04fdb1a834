package dto

import "time"

type TripResponse struct {
	TripID                int              `json:"trip_id"`
	CreatedAt             time.Time        `json:"created_at"`
	CurrentLocation       LocationResponse `json:"current_location"`
	PickupLocation        LocationResponse `json:"pickup_location"`
	DropoffLocation       LocationResponse `json:"dropoff_location"`
	CurrentCycleHoursUsed float64          `json:"current_cycle_hours_used"`
	PlannedDistanceMeters float64          `json:"planned_distance_m"`
	PlannedDurationS      float64          `json:"planned_duration_s"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
