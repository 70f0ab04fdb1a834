package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

type PlanTripHandler struct {
	Provider ports.RouteProvider
	Repo     ports.TripRepository
	Limits   services.Limits
}

// Plan resolves the route current -> pickup -> dropoff, simulates the
// duty timeline, and returns the trip summary with its daily logs.
// With save=true the trip, derived stops, and log sheets are persisted.
func (h *PlanTripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	locs := map[string]*dto.LocationRequest{
		"current_location": req.CurrentLocation,
		"pickup_location":  req.PickupLocation,
		"dropoff_location": req.DropoffLocation,
	}
	for name, loc := range locs {
		if loc == nil {
			writeError(w, r, http.StatusBadRequest, name+" is required")
			return
		}
		if loc.Lat < -90 || loc.Lat > 90 || loc.Lon < -180 || loc.Lon > 180 {
			writeError(w, r, http.StatusBadRequest, name+" is out of range")
			return
		}
	}

	if req.CurrentCycleHoursUsed == nil {
		writeError(w, r, http.StatusBadRequest, "current_cycle_hours_used is required")
		return
	}
	cycleHours := *req.CurrentCycleHoursUsed
	if cycleHours < 0 || cycleHours > h.Limits.CycleCap.Hours() {
		writeError(w, r, http.StatusBadRequest, "current_cycle_hours_used must be between 0 and 70")
		return
	}

	depart := time.Now()
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	waypoints := []domain.GeoPoint{
		{Lat: req.CurrentLocation.Lat, Lon: req.CurrentLocation.Lon, Name: req.CurrentLocation.Name},
		{Lat: req.PickupLocation.Lat, Lon: req.PickupLocation.Lon, Name: req.PickupLocation.Name},
		{Lat: req.DropoffLocation.Lat, Lon: req.DropoffLocation.Lon, Name: req.DropoffLocation.Name},
	}

	routeResult, err := h.Provider.GetRoute(r.Context(), waypoints)
	if err != nil {
		if errors.Is(err, ports.ErrRouteUnavailable) {
			writeError(w, r, http.StatusUnprocessableEntity,
				"No truck-legal roads found near one of the locations")
			return
		}
		log.Printf("get route failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "routing service unavailable")
		return
	}

	logs, err := services.GenerateRouteLogs(routeResult.Legs, cycleHours, depart, h.Limits)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("generate logs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	days := dto.NewDailyLogResponses(logs.Days)
	stops := services.DeriveStops(logs.Events)

	res := dto.PlanTripResponse{
		DistanceMeters:  routeResult.TotalDistanceMeters,
		DurationSeconds: tripDuration(logs.Events).Seconds(),
		Geometry:        json.RawMessage(routeResult.Geometry),
		Stops:           summarizeStops(stops, len(days)),
		Days:            days,
	}

	if req.Save {
		trip := &domain.Trip{
			Current:               waypoints[0],
			Pickup:                waypoints[1],
			Dropoff:               waypoints[2],
			CurrentCycleHoursUsed: cycleHours,
			PlannedDistanceMeters: routeResult.TotalDistanceMeters,
			PlannedDuration:       time.Duration(routeResult.TotalDurationSeconds * float64(time.Second)),
			Geometry:              routeResult.Geometry,
		}

		sheets, err := logSheets(days)
		if err != nil {
			log.Printf("encode log sheets failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

		tripID, err := h.Repo.SaveTrip(r.Context(), trip, stops, sheets)
		if err != nil {
			log.Printf("save trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.TripID = &tripID
	}

	writeJSON(w, r, http.StatusOK, res)
}

func tripDuration(events []domain.DutyEvent) time.Duration {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].End()
}

func summarizeStops(stops []domain.Stop, dayCount int) dto.StopsSummary {
	s := dto.StopsSummary{EstimatedDays: dayCount}
	for _, stop := range stops {
		switch stop.Type {
		case domain.StopFuel:
			s.FuelingStops++
		case domain.StopBreak:
			s.RequiredBreaks++
		case domain.StopRest:
			s.RestPeriods++
		}
	}
	return s
}

func logSheets(days []dto.DailyLogResponse) ([]ports.DayLogSheet, error) {
	sheets := make([]ports.DayLogSheet, 0, len(days))
	for _, d := range days {
		payload, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, ports.DayLogSheet{DayIndex: d.DayIndex, Sheet: payload})
	}
	return sheets, nil
}
