package services

import (
	"errors"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
)

// ErrSegmentation marks an internal consistency failure in the duty
// timeline reaching the segmenter (a gap or non-positive duration).
// It indicates a simulator bug, not bad caller input.
var ErrSegmentation = errors.New("segmentation error")

// Annotation on the synthetic off-duty blocks that pad each log sheet
// out to a full 24 hours.
const annotationOffDuty = "Off duty"

// SegmentDays splits the duty timeline at local midnight boundaries
// into per-day logs. Events straddling midnight are split into two
// events with the same status and annotation whose durations sum to the
// original. The first and last day are padded with off-duty so every
// produced day covers exactly 24 hours. Event offsets inside a DailyLog
// are rebased to that day's midnight.
//
// startCycleHours seeds the day-end cycle totals; the same accounting
// rules as the simulator apply, so an off-duty block of at least
// lim.CycleReset zeroes the running total.
func SegmentDays(
	events []domain.DutyEvent,
	startAt time.Time,
	startCycleHours float64,
	lim Limits,
) ([]domain.DailyLog, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("segment days: empty event sequence: %w", ErrSegmentation)
	}

	expected := time.Duration(0)
	for i, ev := range events {
		if ev.Duration <= 0 {
			return nil, fmt.Errorf(
				"segment days: event %d (%s %q) has non-positive duration %s: %w",
				i, ev.Status, ev.Annotation, ev.Duration, ErrSegmentation,
			)
		}
		if ev.StartOffset != expected {
			return nil, fmt.Errorf(
				"segment days: event %d (%s %q) starts at %s, expected %s: %w",
				i, ev.Status, ev.Annotation, ev.StartOffset, expected, ErrSegmentation,
			)
		}
		expected = ev.End()
	}

	midnight := time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, startAt.Location())
	phase := startAt.Sub(midnight)

	seed := time.Duration(startCycleHours * float64(time.Hour))
	cycle := NewCycleAccountant(lim.CycleCap, lim.CycleDays, seed)
	cycle.phase = phase

	lastDay := int((phase + events[len(events)-1].End() - time.Nanosecond) / day)
	logs := make([]domain.DailyLog, 0, lastDay+1)
	for i := 0; i <= lastDay; i++ {
		logs = append(logs, domain.DailyLog{
			DayIndex: i,
			Date:     midnight.AddDate(0, 0, i),
			Totals:   make(map[domain.DutyStatus]time.Duration),
		})
	}

	appendPiece := func(dayIdx int, ev domain.DutyEvent) {
		logs[dayIdx].Events = append(logs[dayIdx].Events, ev)
		logs[dayIdx].Totals[ev.Status] += ev.Duration
	}

	// Pad from midnight to the trip start on the first sheet.
	if phase > 0 {
		appendPiece(0, domain.DutyEvent{
			Status:      domain.OffDuty,
			StartOffset: 0,
			Duration:    phase,
			Annotation:  annotationOffDuty,
		})
	}

	// Day-end cycle values are snapshotted in timeline order as the walk
	// crosses each midnight, so a later reset cannot retroactively zero
	// an earlier day's total.
	currentDay := 0
	snapshotThrough := func(dayIdx int) {
		for d := currentDay; d < dayIdx; d++ {
			logs[d].CycleUsedAtEnd = cycle.Used(time.Duration(d+1)*day - phase)
		}
		if dayIdx > currentDay {
			currentDay = dayIdx
		}
	}

	for _, ev := range events {
		abs := phase + ev.StartOffset
		remaining := ev.Duration

		for remaining > 0 {
			dayIdx := int(abs / day)
			snapshotThrough(dayIdx)

			untilMidnight := time.Duration(dayIdx+1)*day - abs
			piece := remaining
			if piece > untilMidnight {
				piece = untilMidnight
			}

			appendPiece(dayIdx, domain.DutyEvent{
				Status:      ev.Status,
				StartOffset: abs - time.Duration(dayIdx)*day,
				Duration:    piece,
				Location:    ev.Location,
				Annotation:  ev.Annotation,
			})

			if ev.Status.IsOnDuty() {
				cycle.RecordOnDuty(abs-phase, piece)
			}

			abs += piece
			remaining -= piece
		}

		// A qualifying reset takes effect when the block completes.
		if !ev.Status.IsOnDuty() && ev.Duration >= lim.CycleReset {
			cycle.ApplyReset()
		}
	}

	// Pad the last sheet out to midnight.
	end := phase + events[len(events)-1].End()
	if tail := time.Duration(lastDay+1)*day - end; tail > 0 {
		appendPiece(lastDay, domain.DutyEvent{
			Status:      domain.OffDuty,
			StartOffset: end - time.Duration(lastDay)*day,
			Duration:    tail,
			Annotation:  annotationOffDuty,
		})
	}

	// Remaining days (including the final partial one) see the trip's
	// final cycle value.
	final := cycle.Used(events[len(events)-1].End())
	for d := currentDay; d <= lastDay; d++ {
		logs[d].CycleUsedAtEnd = final
	}

	return logs, nil
}
