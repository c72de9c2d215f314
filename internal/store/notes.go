package store

import (
	"context"

	"github.com/cesargomez89/mekkompis/internal/domain"
)

func (db *DB) ListNotesByJob(ctx context.Context, jobID int64) ([]domain.Note, error) {
	query := `SELECT id, job_id, content, created_at FROM notes WHERE job_id = ? ORDER BY created_at ASC, id ASC`

	notes := []domain.Note{}
	err := db.SelectContext(ctx, &notes, query, jobID)
	return notes, err
}

func (db *DB) GetNote(ctx context.Context, id int64) (*domain.Note, error) {
	note := &domain.Note{}
	err := db.GetContext(ctx, note, `SELECT id, job_id, content, created_at FROM notes WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "note")
	}
	return note, nil
}

func (db *DB) CreateNote(ctx context.Context, jobID int64, content string) (int64, error) {
	res, err := db.ExecContext(ctx, `INSERT INTO notes (job_id, content) VALUES (?, ?)`, jobID, content)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) UpdateNote(ctx context.Context, id int64, content string) error {
	res, err := db.ExecContext(ctx, `UPDATE notes SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "note")
}

func (db *DB) DeleteNote(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "note")
}
