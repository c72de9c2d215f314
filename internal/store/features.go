package store

import (
	"context"

	"github.com/cesargomez89/mekkompis/internal/domain"
)

const featureColumns = `id, title, COALESCE(description, '') AS description, COALESCE(status, 'backlog') AS status, created_at, updated_at`

func (db *DB) ListFeatures(ctx context.Context) ([]domain.Feature, error) {
	features := []domain.Feature{}
	err := db.SelectContext(ctx, &features, `SELECT `+featureColumns+` FROM features ORDER BY created_at DESC, id DESC`)
	return features, err
}

func (db *DB) GetFeature(ctx context.Context, id int64) (*domain.Feature, error) {
	f := &domain.Feature{}
	if err := db.GetContext(ctx, f, `SELECT `+featureColumns+` FROM features WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "feature")
	}
	return f, nil
}

func (db *DB) CreateFeature(ctx context.Context, f *domain.Feature) (int64, error) {
	query := `INSERT INTO features (title, description, status) VALUES (:title, :description, :status)`

	res, err := db.NamedExecContext(ctx, query, f)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) UpdateFeature(ctx context.Context, id int64, title, description string) error {
	query := `UPDATE features SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	res, err := db.ExecContext(ctx, query, title, description, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "feature")
}

func (db *DB) UpdateFeatureStatus(ctx context.Context, id int64, status domain.FeatureStatus) error {
	query := `UPDATE features SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	res, err := db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	return checkAffected(res, "feature")
}

func (db *DB) DeleteFeature(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM features WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "feature")
}
