package store

import (
	"context"

	"github.com/cesargomez89/mekkompis/internal/domain"
)

func (db *DB) ListImagesByJob(ctx context.Context, jobID int64) ([]domain.Image, error) {
	query := `SELECT id, job_id, filename, original_name, created_at FROM images
		WHERE job_id = ? ORDER BY created_at ASC, id ASC`

	images := []domain.Image{}
	err := db.SelectContext(ctx, &images, query, jobID)
	return images, err
}

func (db *DB) GetImage(ctx context.Context, id int64) (*domain.Image, error) {
	query := `SELECT id, job_id, filename, original_name, created_at FROM images WHERE id = ?`

	img := &domain.Image{}
	if err := db.GetContext(ctx, img, query, id); err != nil {
		return nil, notFound(err, "image")
	}
	return img, nil
}

func (db *DB) CreateImage(ctx context.Context, img *domain.Image) (int64, error) {
	query := `INSERT INTO images (job_id, filename, original_name) VALUES (:job_id, :filename, :original_name)`

	res, err := db.NamedExecContext(ctx, query, img)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) DeleteImage(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "image")
}

// ReferencedFilenames returns every upload filename still pointed to by a row.
func (db *DB) ReferencedFilenames(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT filename FROM images
		UNION
		SELECT image_filename FROM motorcycles WHERE image_filename IS NOT NULL AND image_filename != ''`

	var names []string
	if err := db.SelectContext(ctx, &names, query); err != nil {
		return nil, err
	}

	refs := make(map[string]struct{}, len(names))
	for _, name := range names {
		refs[name] = struct{}{}
	}
	return refs, nil
}
