package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/storage"
	"github.com/cesargomez89/mekkompis/internal/store"
)

type MotorcycleService struct {
	Repo   *store.DB
	Files  *storage.Store
	Logger *logger.Logger
	Clock  clockwork.Clock
}

func NewMotorcycleService(repo *store.DB, files *storage.Store, log *logger.Logger) *MotorcycleService {
	return &MotorcycleService{Repo: repo, Files: files, Logger: log, Clock: clockwork.NewRealClock()}
}

func (s *MotorcycleService) List(ctx context.Context) ([]domain.MotorcycleSummary, error) {
	return s.Repo.ListMotorcycles(ctx)
}

// Get returns the motorcycle with its jobs and aggregated stats.
func (s *MotorcycleService) Get(ctx context.Context, id int64) (*domain.MotorcycleDetail, error) {
	m, err := s.Repo.GetMotorcycle(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.Repo.MotorcycleStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get motorcycle stats: %w", err)
	}
	jobs, err := s.Repo.ListJobsByMotorcycle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list motorcycle jobs: %w", err)
	}
	return &domain.MotorcycleDetail{Motorcycle: *m, MotorcycleStats: stats, Jobs: jobs}, nil
}

func (s *MotorcycleService) validate(m *domain.Motorcycle) error {
	if blank(m.Brand) || blank(m.Model) {
		return Invalid("Märke och modell krävs")
	}
	v := &validator{}
	v.year(m.Year, s.Clock.Now())
	v.nonNegative("current_mileage", m.CurrentMileage)
	return v.err()
}

// Create stores the motorcycle and, when given, its image. The file is
// written only after validation passes and removed again if the insert fails.
func (s *MotorcycleService) Create(ctx context.Context, m *domain.Motorcycle, image *storage.Upload) (*domain.Motorcycle, error) {
	if err := s.validate(m); err != nil {
		return nil, err
	}

	m.ImageFilename = nil
	if image != nil {
		name, err := s.Files.Save(*image)
		if err != nil {
			return nil, err
		}
		m.ImageFilename = &name
	}

	id, err := s.Repo.CreateMotorcycle(ctx, m)
	if err != nil {
		s.discard(m.ImageFilename)
		return nil, fmt.Errorf("failed to create motorcycle: %w", err)
	}
	s.Logger.Info("Motorcycle created", "motorcycle_id", id, "brand", m.Brand, "model", m.Model)
	return s.Repo.GetMotorcycle(ctx, id)
}

// Update rewrites the motorcycle. A new image replaces the stored one and
// the previous file is removed after the row points at the new name.
func (s *MotorcycleService) Update(ctx context.Context, id int64, m *domain.Motorcycle, image *storage.Upload) (*domain.Motorcycle, error) {
	if err := s.validate(m); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetMotorcycle(ctx, id)
	if err != nil {
		return nil, err
	}

	m.ID = id
	m.ImageFilename = existing.ImageFilename
	var previous *string
	if image != nil {
		name, err := s.Files.Save(*image)
		if err != nil {
			return nil, err
		}
		previous = existing.ImageFilename
		m.ImageFilename = &name
	}

	if err := s.Repo.UpdateMotorcycle(ctx, m); err != nil {
		if image != nil {
			s.discard(m.ImageFilename)
		}
		return nil, fmt.Errorf("failed to update motorcycle: %w", err)
	}

	s.discard(previous)
	s.Logger.Info("Motorcycle updated", "motorcycle_id", id)
	return s.Repo.GetMotorcycle(ctx, id)
}

// Delete removes the motorcycle row and then its image file. Jobs stay,
// detached from the motorcycle, together with their own images.
func (s *MotorcycleService) Delete(ctx context.Context, id int64) error {
	existing, err := s.Repo.GetMotorcycle(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteMotorcycle(ctx, id); err != nil {
		return err
	}
	s.discard(existing.ImageFilename)
	s.Logger.Info("Motorcycle deleted", "motorcycle_id", id)
	return nil
}

func (s *MotorcycleService) discard(name *string) {
	if name != nil {
		s.Files.RemoveQuietly(*name)
	}
}
