package store

import (
	"context"

	"github.com/cesargomez89/mekkompis/internal/domain"
)

const motorcycleColumns = `id, brand, model, year, registration_number, current_mileage, image_filename, created_at, updated_at`

// ListMotorcycles returns every motorcycle with its job stats, newest first.
func (db *DB) ListMotorcycles(ctx context.Context) ([]domain.MotorcycleSummary, error) {
	query := `SELECT m.id, m.brand, m.model, m.year, m.registration_number, m.current_mileage,
			m.image_filename, m.created_at, m.updated_at,
			COALESCE(s.total_cost, 0.0) AS total_cost,
			COALESCE(s.job_count, 0) AS job_count
		FROM motorcycles m
		LEFT JOIN (
			SELECT motorcycle_id, SUM(cost) AS total_cost, COUNT(*) AS job_count
			FROM jobs
			WHERE motorcycle_id IS NOT NULL
			GROUP BY motorcycle_id
		) s ON s.motorcycle_id = m.id
		ORDER BY m.created_at DESC, m.id DESC`

	motorcycles := []domain.MotorcycleSummary{}
	err := db.SelectContext(ctx, &motorcycles, query)
	return motorcycles, err
}

func (db *DB) GetMotorcycle(ctx context.Context, id int64) (*domain.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles WHERE id = ?`

	m := &domain.Motorcycle{}
	if err := db.GetContext(ctx, m, query, id); err != nil {
		return nil, notFound(err, "motorcycle")
	}
	return m, nil
}

func (db *DB) CreateMotorcycle(ctx context.Context, m *domain.Motorcycle) (int64, error) {
	query := `INSERT INTO motorcycles (brand, model, year, registration_number, current_mileage, image_filename)
		VALUES (:brand, :model, :year, :registration_number, :current_mileage, :image_filename)`

	res, err := db.NamedExecContext(ctx, query, m)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) UpdateMotorcycle(ctx context.Context, m *domain.Motorcycle) error {
	query := `UPDATE motorcycles SET brand = :brand, model = :model, year = :year,
			registration_number = :registration_number, current_mileage = :current_mileage,
			image_filename = :image_filename, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`

	res, err := db.NamedExecContext(ctx, query, m)
	if err != nil {
		return err
	}
	return checkAffected(res, "motorcycle")
}

// DeleteMotorcycle removes the row; its jobs keep existing with a NULL motorcycle_id.
func (db *DB) DeleteMotorcycle(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM motorcycles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "motorcycle")
}

func (db *DB) MotorcycleStats(ctx context.Context, id int64) (domain.MotorcycleStats, error) {
	query := `SELECT COALESCE(SUM(cost), 0.0) AS total_cost, COUNT(*) AS job_count
		FROM jobs WHERE motorcycle_id = ?`

	var stats domain.MotorcycleStats
	err := db.GetContext(ctx, &stats, query, id)
	return stats, err
}
