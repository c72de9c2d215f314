package app

import (
	"context"
	"fmt"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/store"
)

const msgEmptyNote = "Anteckning kan inte vara tom"

type NoteService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewNoteService(repo *store.DB, log *logger.Logger) *NoteService {
	return &NoteService{Repo: repo, Logger: log}
}

// Create adds a note and returns all notes of the job.
func (s *NoteService) Create(ctx context.Context, jobID int64, content string) ([]domain.Note, error) {
	if blank(content) {
		return nil, Invalid(msgEmptyNote)
	}
	if _, err := s.Repo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	if _, err := s.Repo.CreateNote(ctx, jobID, content); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return s.Repo.ListNotesByJob(ctx, jobID)
}

func (s *NoteService) Update(ctx context.Context, id int64, content string) error {
	if blank(content) {
		return Invalid(msgEmptyNote)
	}
	return s.Repo.UpdateNote(ctx, id, content)
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.Repo.DeleteNote(ctx, id)
}
