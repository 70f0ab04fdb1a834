package dto

import "time"

type LocationRequest struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name,omitempty"`
}

type PlanTripRequest struct {
	CurrentLocation       *LocationRequest `json:"current_location"`
	PickupLocation        *LocationRequest `json:"pickup_location"`
	DropoffLocation       *LocationRequest `json:"dropoff_location"`
	CurrentCycleHoursUsed *float64         `json:"current_cycle_hours_used"`
	DepartAt              *time.Time       `json:"depart_at"`
	Save                  bool             `json:"save"`
}

// StopsSummary aggregates the mandatory stops the simulator inserted.
type StopsSummary struct {
	FuelingStops   int `json:"fueling_stops"`
	RequiredBreaks int `json:"required_breaks"`
	RestPeriods    int `json:"rest_periods"`
	EstimatedDays  int `json:"estimated_days"`
}

type PlanTripResponse struct {
	TripID          *int               `json:"trip_id,omitempty"`
	DistanceMeters  float64            `json:"distance_m"`
	DurationSeconds float64            `json:"duration_s"`
	Geometry        any                `json:"geometry"`
	Stops           StopsSummary       `json:"stops"`
	Days            []DailyLogResponse `json:"days"`
}
