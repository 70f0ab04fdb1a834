package services

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"trip-planner-service/internal/domain"
)

func leg(miles float64, d time.Duration) domain.RouteLeg {
	return domain.RouteLeg{
		Origin:        domain.GeoPoint{Lat: 40.0, Lon: -73.0},
		Destination:   domain.GeoPoint{Lat: 41.0, Lon: -74.0},
		DistanceMiles: miles,
		Duration:      d,
	}
}

// checkContiguous verifies the timeline has no gaps, no overlaps, and
// no non-positive durations.
func checkContiguous(t *testing.T, events []domain.DutyEvent) {
	t.Helper()
	expected := time.Duration(0)
	for i, ev := range events {
		if ev.Duration <= 0 {
			t.Fatalf("event %d (%q) has non-positive duration %s", i, ev.Annotation, ev.Duration)
		}
		if ev.StartOffset != expected {
			t.Fatalf("event %d (%q) starts at %s, expected %s", i, ev.Annotation, ev.StartOffset, expected)
		}
		expected = ev.End()
	}
}

func totalByStatus(events []domain.DutyEvent) map[domain.DutyStatus]time.Duration {
	totals := make(map[domain.DutyStatus]time.Duration)
	for _, ev := range events {
		totals[ev.Status] += ev.Duration
	}
	return totals
}

func countAnnotation(events []domain.DutyEvent, annotation string) int {
	n := 0
	for _, ev := range events {
		if ev.Annotation == annotation {
			n++
		}
	}
	return n
}

func TestSimulateTripSingleDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	events, err := SimulateTrip([]domain.RouteLeg{leg(500, 9*time.Hour)}, 0, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, events)

	// 9h of driving forces a 30-min break after 8h; both driving events
	// sum to the leg duration.
	want := []struct {
		status     domain.DutyStatus
		duration   time.Duration
		annotation string
	}{
		{domain.OnDutyNotDriving, time.Hour, AnnotationPickup},
		{domain.Driving, 8 * time.Hour, AnnotationDriving},
		{domain.OffDuty, 30 * time.Minute, AnnotationBreak},
		{domain.Driving, time.Hour, AnnotationDriving},
		{domain.OnDutyNotDriving, time.Hour, AnnotationDropoff},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		if events[i].Status != w.status || events[i].Duration != w.duration || events[i].Annotation != w.annotation {
			t.Errorf("event %d = %v %s %q, want %v %s %q",
				i, events[i].Status, events[i].Duration, events[i].Annotation,
				w.status, w.duration, w.annotation)
		}
	}

	if n := countAnnotation(events, AnnotationReset); n != 0 {
		t.Errorf("expected no cycle reset, got %d", n)
	}

	days, err := SegmentDays(events, start, 0, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("got %d daily logs, want 1", len(days))
	}

	d := days[0]
	if d.Totals[domain.Driving] != 9*time.Hour {
		t.Errorf("driving total = %s, want 9h", d.Totals[domain.Driving])
	}
	if d.Totals[domain.OnDutyNotDriving] != 2*time.Hour {
		t.Errorf("on-duty total = %s, want 2h", d.Totals[domain.OnDutyNotDriving])
	}
	if d.Totals[domain.OffDuty] != 13*time.Hour {
		t.Errorf("off-duty total = %s, want 13h", d.Totals[domain.OffDuty])
	}
}

func TestSimulateTripDailyRestSplitsTrip(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	events, err := SimulateTrip([]domain.RouteLeg{leg(600, 13*time.Hour)}, 0, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, events)

	if n := countAnnotation(events, AnnotationRest); n != 1 {
		t.Fatalf("expected exactly one daily rest, got %d: %+v", n, events)
	}

	// The rest lands after the full 11h of driving for the day.
	var drivenBeforeRest time.Duration
	for _, ev := range events {
		if ev.Annotation == AnnotationRest {
			break
		}
		if ev.Status == domain.Driving {
			drivenBeforeRest += ev.Duration
		}
	}
	if drivenBeforeRest != 11*time.Hour {
		t.Errorf("driving before rest = %s, want 11h", drivenBeforeRest)
	}

	totals := totalByStatus(events)
	if totals[domain.Driving] != 13*time.Hour {
		t.Errorf("total driving = %s, want 13h", totals[domain.Driving])
	}

	days, err := SegmentDays(events, start, 0, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d daily logs, want 2", len(days))
	}
	if days[0].Totals[domain.Driving] != 11*time.Hour {
		t.Errorf("day 0 driving = %s, want 11h", days[0].Totals[domain.Driving])
	}
	if days[1].Totals[domain.Driving] != 2*time.Hour {
		t.Errorf("day 1 driving = %s, want 2h", days[1].Totals[domain.Driving])
	}
}

func TestSimulateTripCycleReset(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	events, err := SimulateTrip([]domain.RouteLeg{leg(250, 5*time.Hour)}, 68, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, events)

	if n := countAnnotation(events, AnnotationReset); n != 1 {
		t.Fatalf("expected exactly one 34-hour reset, got %d: %+v", n, events)
	}

	// 68h seed + 1h pickup + 1h driving exhausts the cycle; the reset
	// must precede any further on-duty time.
	if events[0].Annotation != AnnotationPickup {
		t.Fatalf("first event = %q, want pickup", events[0].Annotation)
	}
	if events[1].Status != domain.Driving || events[1].Duration != time.Hour {
		t.Fatalf("event 1 = %v %s, want 1h driving", events[1].Status, events[1].Duration)
	}
	if events[2].Annotation != AnnotationReset || events[2].Duration != 34*time.Hour {
		t.Fatalf("event 2 = %q %s, want 34h reset", events[2].Annotation, events[2].Duration)
	}
	if events[3].Status != domain.Driving || events[3].Duration != 4*time.Hour {
		t.Fatalf("event 3 = %v %s, want 4h driving", events[3].Status, events[3].Duration)
	}

	// The rolling total restarts from zero after the reset: only the
	// post-reset on-duty time (4h drive + 1h drop-off) remains at the end.
	days, err := SegmentDays(events, start, 68, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := days[len(days)-1]
	if last.CycleUsedAtEnd != 5*time.Hour {
		t.Errorf("cycle at trip end = %s, want 5h", last.CycleUsedAtEnd)
	}
}

func TestSimulateTripFuelStop(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	// 1500mi in 7h stays under every duty limit, so only the 1000-mile
	// mark splits the leg.
	events, err := SimulateTrip([]domain.RouteLeg{leg(1500, 7*time.Hour)}, 0, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, events)

	if n := countAnnotation(events, AnnotationFueling); n != 1 {
		t.Fatalf("expected exactly one fueling stop, got %d: %+v", n, events)
	}

	want := []struct {
		status     domain.DutyStatus
		duration   time.Duration
		annotation string
	}{
		{domain.OnDutyNotDriving, time.Hour, AnnotationPickup},
		{domain.Driving, 4*time.Hour + 40*time.Minute, AnnotationDriving},
		{domain.OnDutyNotDriving, 30 * time.Minute, AnnotationFueling},
		{domain.Driving, 2*time.Hour + 20*time.Minute, AnnotationDriving},
		{domain.OnDutyNotDriving, time.Hour, AnnotationDropoff},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		if events[i].Status != w.status || events[i].Duration != w.duration || events[i].Annotation != w.annotation {
			t.Errorf("event %d = %v %s %q, want %v %s %q",
				i, events[i].Status, events[i].Duration, events[i].Annotation,
				w.status, w.duration, w.annotation)
		}
	}

	// The split lands at the 1000-mile mark.
	speed := 1500.0 / (7 * time.Hour).Seconds()
	milesBeforeFuel := speed * events[1].Duration.Seconds()
	if math.Abs(milesBeforeFuel-1000) > 0.01 {
		t.Errorf("miles before fueling = %.3f, want 1000", milesBeforeFuel)
	}
}

func TestSimulateTripPriorityCycleOverDailyRest(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	// 58h seed + 1h pickup + 11h driving exhausts the daily driving cap
	// and the cycle cap at the same instant; the cycle limit wins, so a
	// 34h reset is inserted (which also restores the daily counters).
	events, err := SimulateTrip([]domain.RouteLeg{leg(650, 13*time.Hour)}, 58, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, events)

	if n := countAnnotation(events, AnnotationReset); n != 1 {
		t.Fatalf("expected one 34-hour reset, got %d: %+v", n, events)
	}
	if n := countAnnotation(events, AnnotationRest); n != 0 {
		t.Fatalf("expected no 10-hour rest, got %d: %+v", n, events)
	}
}

func TestSimulateTripDurationModeIgnoresMileage(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	// Zero distance makes the fuel rule inert regardless of duration.
	logs, err := GenerateDurationLogs(30*time.Hour, 0, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, logs.Events)

	if n := countAnnotation(logs.Events, AnnotationFueling); n != 0 {
		t.Errorf("expected no fueling stops, got %d", n)
	}

	totals := totalByStatus(logs.Events)
	if totals[domain.Driving] != 30*time.Hour {
		t.Errorf("total driving = %s, want 30h", totals[domain.Driving])
	}
	for _, d := range logs.Days {
		var sum time.Duration
		for _, ev := range d.Events {
			sum += ev.Duration
		}
		if sum != 24*time.Hour {
			t.Errorf("day %d sums to %s, want 24h", d.DayIndex, sum)
		}
	}
}

func TestSimulateTripIdempotent(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	legs := []domain.RouteLeg{leg(1500, 28*time.Hour), leg(400, 8*time.Hour)}

	first, err := SimulateTrip(legs, 12, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := SimulateTrip(legs, 12, start, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different timelines")
	}
}

func TestSimulateTripLongHaulInvariants(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	lim := DefaultLimits()
	theLeg := leg(2800, 50*time.Hour)

	events, err := SimulateTrip([]domain.RouteLeg{theLeg}, 60, start, lim)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, events)

	// Replay the timeline: the rolling on-duty total must never exceed
	// the cap between resets, and driven miles between fuel stops must
	// stay within the interval.
	speed := theLeg.DistanceMiles / theLeg.Duration.Seconds()
	cycle := 60 * time.Hour
	var sinceFuel float64
	for i, ev := range events {
		if ev.Status.IsOnDuty() {
			cycle += ev.Duration
			if cycle > lim.CycleCap {
				t.Fatalf("event %d (%q): cycle total %s exceeds %s", i, ev.Annotation, cycle, lim.CycleCap)
			}
		} else if ev.Duration >= lim.CycleReset {
			cycle = 0
		}

		if ev.Status == domain.Driving {
			sinceFuel += speed * ev.Duration.Seconds()
			if sinceFuel > lim.FuelIntervalMiles+0.01 {
				t.Fatalf("event %d: %.2f miles since fueling exceeds %.0f", i, sinceFuel, lim.FuelIntervalMiles)
			}
		}
		if ev.Annotation == AnnotationFueling {
			sinceFuel = 0
		}
	}

	days, err := SegmentDays(events, start, 60, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range days {
		var sum time.Duration
		for _, ev := range d.Events {
			sum += ev.Duration
		}
		if sum != 24*time.Hour {
			t.Errorf("day %d sums to %s, want 24h", d.DayIndex, sum)
		}
		if d.CycleUsedAtEnd > lim.CycleCap {
			t.Errorf("day %d cycle %s exceeds cap", d.DayIndex, d.CycleUsedAtEnd)
		}
	}
}

func TestSimulateTripInvalidInput(t *testing.T) {
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		legs       []domain.RouteLeg
		cycleHours float64
	}{
		{"negative distance", []domain.RouteLeg{leg(-1, time.Hour)}, 0},
		{"negative duration", []domain.RouteLeg{leg(10, -time.Hour)}, 0},
		{"cycle hours below range", []domain.RouteLeg{leg(10, time.Hour)}, -0.1},
		{"cycle hours above range", []domain.RouteLeg{leg(10, time.Hour)}, 70.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SimulateTrip(tc.legs, tc.cycleHours, start, DefaultLimits())
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
