package store

import (
	"context"

	"github.com/cesargomez89/mekkompis/internal/domain"
)

const jobColumns = `id, motorcycle_id, title, description, date, mileage, cost,
	COALESCE(completed, 0) AS completed, created_at, updated_at`

func (db *DB) ListJobs(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY date DESC, created_at DESC, id DESC`

	jobs := []domain.Job{}
	err := db.SelectContext(ctx, &jobs, query)
	return jobs, err
}

func (db *DB) ListJobsByMotorcycle(ctx context.Context, motorcycleID int64) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE motorcycle_id = ?
		ORDER BY date DESC, created_at DESC, id DESC`

	jobs := []domain.Job{}
	err := db.SelectContext(ctx, &jobs, query, motorcycleID)
	return jobs, err
}

func (db *DB) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	job := &domain.Job{}
	if err := db.GetContext(ctx, job, query, id); err != nil {
		return nil, notFound(err, "job")
	}
	return job, nil
}

func (db *DB) CreateJob(ctx context.Context, job *domain.Job) (int64, error) {
	query := `INSERT INTO jobs (motorcycle_id, title, description, date, mileage, cost)
		VALUES (:motorcycle_id, :title, :description, :date, :mileage, :cost)`

	res, err := db.NamedExecContext(ctx, query, job)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateJob rewrites the editable fields. Completion is only changed by ToggleJobCompleted.
func (db *DB) UpdateJob(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET motorcycle_id = :motorcycle_id, title = :title, description = :description,
			date = :date, mileage = :mileage, cost = :cost, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`

	res, err := db.NamedExecContext(ctx, query, job)
	if err != nil {
		return err
	}
	return checkAffected(res, "job")
}

// DeleteJob removes the job; images, notes and shopping items go with it.
func (db *DB) DeleteJob(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "job")
}

// ToggleJobCompleted flips the completed flag in a single statement and
// returns the new value.
func (db *DB) ToggleJobCompleted(ctx context.Context, id int64) (domain.Flag, error) {
	query := `UPDATE jobs SET completed = 1 - COALESCE(completed, 0), updated_at = CURRENT_TIMESTAMP
		WHERE id = ? RETURNING completed`

	var completed domain.Flag
	if err := db.QueryRowxContext(ctx, query, id).Scan(&completed); err != nil {
		return false, notFound(err, "job")
	}
	return completed, nil
}
