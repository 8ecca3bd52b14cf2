package repository

import (
	"context"
	"time"

	"github.com/mestral-events/opsboard/backend/internal/domain"
)

// AssignmentsByPlate reads standalone vehicle-assignment rows for the plate,
// coarsely prefiltered by day keys. Status filtering stays client-side: the
// engine decides which statuses block.
func (r *Repository) AssignmentsByPlate(plate string, dayKeys []string) ([]*domain.VehicleAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT DISTINCT va.id, va.plate, va.event_id, va.start_date, va.start_time, va.end_date, va.end_time, va.status, va.created_at, va.version
		FROM vehicle_assignments va
		JOIN vehicle_assignment_days vad ON vad.assignment_id = va.id
		WHERE va.plate = $1 AND vad.day >= $2 AND vad.day <= $3
		ORDER BY va.id
	`

	firstDay, lastDay := "", ""
	if len(dayKeys) > 0 {
		firstDay = dayKeys[0]
		lastDay = dayKeys[len(dayKeys)-1]
	}

	rows, err := r.dbpool.QueryContext(ctx, query, plate, firstDay, lastDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.VehicleAssignment, 0)
	for rows.Next() {
		assignment := &domain.VehicleAssignment{}
		dst := []any{
			&assignment.ID,
			&assignment.Plate,
			&assignment.EventID,
			&assignment.StartDate,
			&assignment.StartTime,
			&assignment.EndDate,
			&assignment.EndTime,
			&assignment.Status,
			&assignment.CreatedAt,
			&assignment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) GetVehicleAssignment(id int64) (*domain.VehicleAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT plate, event_id, start_date, start_time, end_date, end_time, status, created_at, version
		FROM vehicle_assignments WHERE id = $1
	`

	assignment := &domain.VehicleAssignment{
		ID: id,
	}

	dst := []any{
		&assignment.Plate,
		&assignment.EventID,
		&assignment.StartDate,
		&assignment.StartTime,
		&assignment.EndDate,
		&assignment.EndTime,
		&assignment.Status,
		&assignment.CreatedAt,
		&assignment.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

// CreateVehicleAssignment inserts the row and its day keys in one
// transaction.
func (r *Repository) CreateVehicleAssignment(assignment *domain.VehicleAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO vehicle_assignments (plate, event_id, start_date, start_time, end_date, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{
		assignment.Plate,
		assignment.EventID,
		assignment.StartDate,
		assignment.StartTime,
		assignment.EndDate,
		assignment.EndTime,
		assignment.Status,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.Version); err != nil {
		return err
	}

	for _, day := range assignment.DayKeys {
		query := `INSERT INTO vehicle_assignment_days (assignment_id, day) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, assignment.ID, day); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateVehicleAssignmentStatus(assignment *domain.VehicleAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE vehicle_assignments
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, assignment.Status, assignment.ID, assignment.Version).Scan(&assignment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListVehicleAssignments(plate string) ([]*domain.VehicleAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, plate, event_id, start_date, start_time, end_date, end_time, status, created_at, version
		FROM vehicle_assignments
		WHERE $1 = '' OR plate = $1
		ORDER BY start_date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, plate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.VehicleAssignment, 0)
	for rows.Next() {
		assignment := &domain.VehicleAssignment{}
		dst := []any{
			&assignment.ID,
			&assignment.Plate,
			&assignment.EventID,
			&assignment.StartDate,
			&assignment.StartTime,
			&assignment.EndDate,
			&assignment.EndTime,
			&assignment.Status,
			&assignment.CreatedAt,
			&assignment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
