package dto

import (
	"time"

	"trip-planner-service/internal/domain"
)

type LocationResponse struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name,omitempty"`
}

type DutyEventResponse struct {
	Status       string            `json:"status"`
	StatusRow    int               `json:"status_row"`
	StartOffsetS float64           `json:"start_offset_s"`
	DurationS    float64           `json:"duration_s"`
	Location     *LocationResponse `json:"location,omitempty"`
	Annotation   string            `json:"annotation"`
}

type DailyLogResponse struct {
	DayIndex                  int                 `json:"day_index"`
	Date                      string              `json:"date"`
	Events                    []DutyEventResponse `json:"events"`
	TotalsByStatus            map[string]float64  `json:"totals_by_status"`
	CumulativeCycleHoursAtEnd float64             `json:"cumulative_cycle_hours_at_end"`
}

type ELDLogsResponse struct {
	Days []DailyLogResponse `json:"days"`
}

// NewDailyLogResponse converts one segmented day into its wire shape.
// Offsets and durations are reported in seconds; totals carry an entry
// for every status so log sheets render all four rows.
func NewDailyLogResponse(day domain.DailyLog) DailyLogResponse {
	events := make([]DutyEventResponse, 0, len(day.Events))
	for _, ev := range day.Events {
		res := DutyEventResponse{
			Status:       ev.Status.String(),
			StatusRow:    int(ev.Status),
			StartOffsetS: ev.StartOffset.Seconds(),
			DurationS:    ev.Duration.Seconds(),
			Annotation:   ev.Annotation,
		}
		if ev.Location != (domain.GeoPoint{}) {
			res.Location = &LocationResponse{
				Lat:  ev.Location.Lat,
				Lon:  ev.Location.Lon,
				Name: ev.Location.Name,
			}
		}
		events = append(events, res)
	}

	totals := make(map[string]float64, 4)
	for _, status := range []domain.DutyStatus{
		domain.OffDuty, domain.SleeperBerth, domain.Driving, domain.OnDutyNotDriving,
	} {
		totals[status.String()] = day.Totals[status].Seconds()
	}

	return DailyLogResponse{
		DayIndex:                  day.DayIndex,
		Date:                      day.Date.Format(time.DateOnly),
		Events:                    events,
		TotalsByStatus:            totals,
		CumulativeCycleHoursAtEnd: day.CycleUsedAtEnd.Hours(),
	}
}

// NewDailyLogResponses converts a whole trip's segmented days.
func NewDailyLogResponses(days []domain.DailyLog) []DailyLogResponse {
	out := make([]DailyLogResponse, 0, len(days))
	for _, d := range days {
		out = append(out, NewDailyLogResponse(d))
	}
	return out
}
