package repository

import (
	"context"
	"time"
)

// GetMinRestHours reads one department's configured minimum rest. Callers go
// through collections.RestPolicy, which caches the value and supplies the
// default when this errors.
func (r *Repository) GetMinRestHours(collection string) (int, error) {
	query := `
		SELECT min_rest_hours FROM department_settings WHERE collection = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var hours int
	if err := r.dbpool.QueryRowContext(ctx, query, collection).Scan(&hours); err != nil {
		return 0, err
	}

	return hours, nil
}

func (r *Repository) UpsertMinRestHours(collection string, hours int) error {
	query := `
		INSERT INTO department_settings (collection, min_rest_hours)
		VALUES ($1, $2)
		ON CONFLICT (collection) DO UPDATE SET min_rest_hours = EXCLUDED.min_rest_hours
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, collection, hours)
	if err != nil {
		return err
	}

	return nil
}
