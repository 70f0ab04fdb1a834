package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// SqliteTripRepository persists planned trips, their mandatory stops,
// and generated daily log sheets.
type SqliteTripRepository struct {
	DB *sql.DB
}

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// SaveTrip stores the trip with its stops and log sheets in one
// transaction and returns the assigned trip id.
func (r *SqliteTripRepository) SaveTrip(
	ctx context.Context,
	trip *domain.Trip,
	stops []domain.Stop,
	sheets []ports.DayLogSheet,
) (int, error) {
	if r.DB == nil {
		return 0, errors.New("trip repository: db is nil")
	}
	if trip == nil {
		return 0, errors.New("save trip: trip must be non-nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save trip: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
	INSERT INTO trips (
		created_at,
		current_lat, current_lon,
		pickup_lat, pickup_lon,
		dropoff_lat, dropoff_lon,
		current_cycle_hours_used,
		planned_distance_m, planned_duration_s,
		geometry
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		now.Format(time.RFC3339Nano),
		trip.Current.Lat, trip.Current.Lon,
		trip.Pickup.Lat, trip.Pickup.Lon,
		trip.Dropoff.Lat, trip.Dropoff.Lon,
		trip.CurrentCycleHoursUsed,
		trip.PlannedDistanceMeters, trip.PlannedDuration.Seconds(),
		string(trip.Geometry),
	)
	if err != nil {
		return 0, fmt.Errorf("save trip: insert trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save trip: last insert id: %w", err)
	}
	tripID := int(id)

	stopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (trip_id, sequence_index, type, at_time_s, lat, lon)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("save trip: prepare stops: %w", err)
	}
	defer stopStmt.Close()

	for _, s := range stops {
		if _, err := stopStmt.ExecContext(ctx,
			tripID, s.SequenceIndex, s.Type, s.AtTime.Seconds(), s.Location.Lat, s.Location.Lon,
		); err != nil {
			return 0, fmt.Errorf("save trip: insert stop %d: %w", s.SequenceIndex, err)
		}
	}

	sheetStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO eld_logs (trip_id, day_index, generated_at, sheet)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("save trip: prepare eld_logs: %w", err)
	}
	defer sheetStmt.Close()

	for _, sheet := range sheets {
		if _, err := sheetStmt.ExecContext(ctx,
			tripID, sheet.DayIndex, now.Format(time.RFC3339Nano), string(sheet.Sheet),
		); err != nil {
			return 0, fmt.Errorf("save trip: insert log day %d: %w", sheet.DayIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save trip: commit: %w", err)
	}

	return tripID, nil
}

func (r *SqliteTripRepository) GetTrip(ctx context.Context, tripID int) (*domain.Trip, error) {
	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	q := `
	SELECT
		trip_id, created_at,
		current_lat, current_lon,
		pickup_lat, pickup_lon,
		dropoff_lat, dropoff_lon,
		current_cycle_hours_used,
		planned_distance_m, planned_duration_s,
		geometry
	FROM trips
	WHERE trip_id = ?;
	`

	trip, err := scanTrip(r.DB.QueryRowContext(ctx, q, tripID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %d: %w", tripID, ports.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", tripID, err)
	}

	return trip, nil
}

func (r *SqliteTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	q := `
	SELECT
		trip_id, created_at,
		current_lat, current_lon,
		pickup_lat, pickup_lon,
		dropoff_lat, dropoff_lon,
		current_cycle_hours_used,
		planned_distance_m, planned_duration_s,
		geometry
	FROM trips
	ORDER BY trip_id DESC;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var (
		trip      domain.Trip
		createdAt string
		durationS float64
		geometry  string
	)

	err := row.Scan(
		&trip.TripID, &createdAt,
		&trip.Current.Lat, &trip.Current.Lon,
		&trip.Pickup.Lat, &trip.Pickup.Lon,
		&trip.Dropoff.Lat, &trip.Dropoff.Lon,
		&trip.CurrentCycleHoursUsed,
		&trip.PlannedDistanceMeters, &durationS,
		&geometry,
	)
	if err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan trip %d: parse created_at %q: %w", trip.TripID, createdAt, err)
	}

	trip.CreatedAt = ts
	trip.PlannedDuration = time.Duration(durationS * float64(time.Second))
	trip.Geometry = []byte(geometry)

	return &trip, nil
}
