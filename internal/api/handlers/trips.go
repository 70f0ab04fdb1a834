package handlers

import (
	"log"
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// TripHandler exposes read-only saved-trip retrieval endpoints.
type TripHandler struct {
	Repo ports.TripRepository
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{
		Trips: make([]dto.TripResponse, 0, len(trips)),
	}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripResponse{
			TripID:                t.TripID,
			CreatedAt:             t.CreatedAt,
			CurrentLocation:       locationResponse(t.Current),
			PickupLocation:        locationResponse(t.Pickup),
			DropoffLocation:       locationResponse(t.Dropoff),
			CurrentCycleHoursUsed: t.CurrentCycleHoursUsed,
			PlannedDistanceMeters: t.PlannedDistanceMeters,
			PlannedDurationS:      t.PlannedDuration.Seconds(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func locationResponse(p domain.GeoPoint) dto.LocationResponse {
	return dto.LocationResponse{Lat: p.Lat, Lon: p.Lon, Name: p.Name}
}
