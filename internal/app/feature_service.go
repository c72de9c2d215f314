package app

import (
	"context"
	"fmt"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/store"
)

type FeatureService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewFeatureService(repo *store.DB, log *logger.Logger) *FeatureService {
	return &FeatureService{Repo: repo, Logger: log}
}

func (s *FeatureService) List(ctx context.Context) ([]domain.Feature, error) {
	return s.Repo.ListFeatures(ctx)
}

func (s *FeatureService) Get(ctx context.Context, id int64) (*domain.Feature, error) {
	return s.Repo.GetFeature(ctx, id)
}

func validateStatus(status domain.FeatureStatus) error {
	if !status.Valid() {
		return &ValidationError{Fields: []FieldError{{
			Field:   "status",
			Message: "måste vara backlog, planned, in_progress eller done",
		}}}
	}
	return nil
}

func (s *FeatureService) Create(ctx context.Context, f *domain.Feature) (*domain.Feature, error) {
	if blank(f.Title) {
		return nil, Invalid("Titel krävs")
	}
	if f.Status == "" {
		f.Status = domain.FeatureStatusBacklog
	}
	if err := validateStatus(f.Status); err != nil {
		return nil, err
	}

	id, err := s.Repo.CreateFeature(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to create feature: %w", err)
	}
	return s.Repo.GetFeature(ctx, id)
}

func (s *FeatureService) Update(ctx context.Context, id int64, title, description string) (*domain.Feature, error) {
	if blank(title) {
		return nil, Invalid("Titel krävs")
	}
	if err := s.Repo.UpdateFeature(ctx, id, title, description); err != nil {
		return nil, err
	}
	return s.Repo.GetFeature(ctx, id)
}

func (s *FeatureService) UpdateStatus(ctx context.Context, id int64, status domain.FeatureStatus) (*domain.Feature, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateFeatureStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.Repo.GetFeature(ctx, id)
}

func (s *FeatureService) Delete(ctx context.Context, id int64) error {
	return s.Repo.DeleteFeature(ctx, id)
}
