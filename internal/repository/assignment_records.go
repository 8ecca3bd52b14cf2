package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mestral-events/opsboard/backend/internal/domain"
)

// ErrUnknownCollection is returned when a caller names a collection outside
// the partition whitelist. Table names never come from request input without
// passing the resolver first.
var ErrUnknownCollection = fmt.Errorf("unknown record collection")

const assignmentRecordColumns = `id, event_id, department, start_date, start_time, end_date, end_time, responsible, drivers, workers, ad_hoc_groups, created_at, version`

func (r *Repository) scanAssignmentRecord(scan func(dst ...any) error) (*domain.AssignmentRecord, error) {
	record := &domain.AssignmentRecord{}
	var responsible, drivers, workers, adHocGroups []byte

	dst := []any{
		&record.ID,
		&record.EventID,
		&record.Department,
		&record.StartDate,
		&record.StartTime,
		&record.EndDate,
		&record.EndTime,
		&responsible,
		&drivers,
		&workers,
		&adHocGroups,
		&record.CreatedAt,
		&record.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		raw   []byte
		lines *domain.ParticipantLines
	}{
		{responsible, &record.Responsible},
		{drivers, &record.Drivers},
		{workers, &record.Workers},
		{adHocGroups, &record.AdHocGroups},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.lines); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// RecordsUntil reads every record of one partitioned collection whose
// start_date is not after until. The filter is a loose prefilter only; exact
// interval overlap is the availability engine's job.
func (r *Repository) RecordsUntil(collection string, until string) ([]*domain.AssignmentRecord, error) {
	if !r.resolver.Known(collection) {
		return nil, ErrUnknownCollection
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE $1 = '' OR start_date <= $1
		ORDER BY start_date, id
	`, assignmentRecordColumns, collection)

	rows, err := r.dbpool.QueryContext(ctx, query, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.AssignmentRecord, 0)
	for rows.Next() {
		record, err := r.scanAssignmentRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetAssignmentRecord(collection string, id string) (*domain.AssignmentRecord, error) {
	if !r.resolver.Known(collection) {
		return nil, ErrUnknownCollection
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, assignmentRecordColumns, collection)

	return r.scanAssignmentRecord(func(dst ...any) error {
		return r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...)
	})
}

func (r *Repository) CreateAssignmentRecord(collection string, record *domain.AssignmentRecord) error {
	if !r.resolver.Known(collection) {
		return ErrUnknownCollection
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	responsible, err := json.Marshal(record.Responsible)
	if err != nil {
		return err
	}
	drivers, err := json.Marshal(record.Drivers)
	if err != nil {
		return err
	}
	workers, err := json.Marshal(record.Workers)
	if err != nil {
		return err
	}
	adHocGroups, err := json.Marshal(record.AdHocGroups)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, event_id, department, start_date, start_time, end_date, end_time, responsible, drivers, workers, ad_hoc_groups)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, version
	`, collection)

	args := []any{
		record.ID,
		record.EventID,
		record.Department,
		record.StartDate,
		record.StartTime,
		record.EndDate,
		record.EndTime,
		responsible,
		drivers,
		workers,
		adHocGroups,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.CreatedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateAssignmentRecord(collection string, record *domain.AssignmentRecord) error {
	if !r.resolver.Known(collection) {
		return ErrUnknownCollection
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	responsible, err := json.Marshal(record.Responsible)
	if err != nil {
		return err
	}
	drivers, err := json.Marshal(record.Drivers)
	if err != nil {
		return err
	}
	workers, err := json.Marshal(record.Workers)
	if err != nil {
		return err
	}
	adHocGroups, err := json.Marshal(record.AdHocGroups)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET
			start_date = $1,
			start_time = $2,
			end_date = $3,
			end_time = $4,
			responsible = $5,
			drivers = $6,
			workers = $7,
			ad_hoc_groups = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING created_at, version
	`, collection)

	args := []any{
		record.StartDate,
		record.StartTime,
		record.EndDate,
		record.EndTime,
		responsible,
		drivers,
		workers,
		adHocGroups,
		record.ID,
		record.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.CreatedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAssignmentRecord(collection string, id string) error {
	if !r.resolver.Known(collection) {
		return ErrUnknownCollection
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, collection)

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
