package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/storage"
	"github.com/cesargomez89/mekkompis/internal/store"
)

type JobService struct {
	Repo   *store.DB
	Files  *storage.Store
	Logger *logger.Logger
	Clock  clockwork.Clock
}

func NewJobService(repo *store.DB, files *storage.Store, log *logger.Logger) *JobService {
	return &JobService{Repo: repo, Files: files, Logger: log, Clock: clockwork.NewRealClock()}
}

func (s *JobService) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.Repo.ListJobs(ctx)
}

// GetJob returns the job with its images, notes and shopping items.
func (s *JobService) GetJob(ctx context.Context, id int64) (*domain.JobDetail, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.Repo.ListImagesByJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	notes, err := s.Repo.ListNotesByJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	items, err := s.Repo.ListShoppingItemsByJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	return &domain.JobDetail{Job: *job, Images: images, Notes: notes, ShoppingItems: items}, nil
}

func (s *JobService) validate(ctx context.Context, job *domain.Job) error {
	if blank(job.Title) || blank(job.Date) {
		return Invalid("Titel och datum krävs")
	}

	v := &validator{}
	v.date(job.Date, s.Clock.Now())
	v.nonNegative("mileage", job.Mileage)
	v.nonNegativeFloat("cost", job.Cost)
	if job.MotorcycleID != nil {
		if _, err := s.Repo.GetMotorcycle(ctx, *job.MotorcycleID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("failed to check motorcycle: %w", err)
			}
			v.add("motorcycle_id", "motorcykeln finns inte")
		}
	}
	return v.err()
}

func (s *JobService) CreateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if err := s.validate(ctx, job); err != nil {
		return nil, err
	}

	id, err := s.Repo.CreateJob(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	s.Logger.Info("Job created", "job_id", id, "motorcycle_id", job.MotorcycleID)
	return s.Repo.GetJob(ctx, id)
}

func (s *JobService) UpdateJob(ctx context.Context, id int64, job *domain.Job) (*domain.Job, error) {
	if err := s.validate(ctx, job); err != nil {
		return nil, err
	}

	job.ID = id
	if err := s.Repo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}
	s.Logger.Info("Job updated", "job_id", id)
	return s.Repo.GetJob(ctx, id)
}

// DeleteJob collects the job's image files, deletes the row (children
// cascade) and then removes the files. File errors are only logged.
func (s *JobService) DeleteJob(ctx context.Context, id int64) error {
	if _, err := s.Repo.GetJob(ctx, id); err != nil {
		return err
	}
	images, err := s.Repo.ListImagesByJob(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}

	if err := s.Repo.DeleteJob(ctx, id); err != nil {
		return err
	}

	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Filename)
	}
	s.Files.RemoveQuietly(names...)
	s.Logger.Info("Job deleted", "job_id", id, "images", len(names))
	return nil
}

func (s *JobService) ToggleCompleted(ctx context.Context, id int64) (domain.Flag, error) {
	completed, err := s.Repo.ToggleJobCompleted(ctx, id)
	if err != nil {
		return false, err
	}
	s.Logger.Info("Job completion toggled", "job_id", id, "completed", completed.Int())
	return completed, nil
}
