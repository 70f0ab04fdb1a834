package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

type ELDLogsHandler struct {
	Repo   ports.TripRepository
	Limits services.Limits
}

// Logs generates daily log sheets in one of two entry modes:
//
//	?trip_id=N                      regenerate logs for a saved trip
//	?duration_s=N[&cycle_hours=H]   what-if logs for a bare drive time
func (h *ELDLogsHandler) Logs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	hasTrip := q.Get("trip_id") != ""
	hasDuration := q.Get("duration_s") != ""

	switch {
	case hasTrip && hasDuration:
		writeError(w, r, http.StatusBadRequest, "pass either trip_id or duration_s, not both")
	case hasTrip:
		h.logsFromTrip(w, r, q.Get("trip_id"))
	case hasDuration:
		h.logsFromDuration(w, r, q.Get("duration_s"), q.Get("cycle_hours"))
	default:
		writeError(w, r, http.StatusBadRequest, "trip_id or duration_s is required")
	}
}

func (h *ELDLogsHandler) logsFromTrip(w http.ResponseWriter, r *http.Request, rawID string) {
	tripID, err := strconv.Atoi(rawID)
	if err != nil || tripID < 1 {
		writeError(w, r, http.StatusBadRequest, "trip_id must be a positive integer")
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// Regeneration is anchored to the trip's creation instant so the
	// same trip always yields the same sheets.
	logs, err := services.GenerateDurationLogs(
		trip.PlannedDuration, trip.CurrentCycleHoursUsed, trip.CreatedAt, h.Limits,
	)
	if err != nil {
		log.Printf("generate logs for trip %d failed: %v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ELDLogsResponse{Days: dto.NewDailyLogResponses(logs.Days)})
}

func (h *ELDLogsHandler) logsFromDuration(w http.ResponseWriter, r *http.Request, rawDuration, rawCycle string) {
	durationS, err := strconv.ParseFloat(rawDuration, 64)
	if err != nil || durationS < 0 {
		writeError(w, r, http.StatusBadRequest, "duration_s must be a non-negative number")
		return
	}

	cycleHours := 0.0
	if rawCycle != "" {
		cycleHours, err = strconv.ParseFloat(rawCycle, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "cycle_hours must be a number")
			return
		}
	}
	if cycleHours < 0 || cycleHours > h.Limits.CycleCap.Hours() {
		writeError(w, r, http.StatusBadRequest, "cycle_hours must be between 0 and 70")
		return
	}

	logs, err := services.GenerateDurationLogs(
		time.Duration(durationS*float64(time.Second)), cycleHours, time.Now(), h.Limits,
	)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("generate duration logs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ELDLogsResponse{Days: dto.NewDailyLogResponses(logs.Days)})
}
