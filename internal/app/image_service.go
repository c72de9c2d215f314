package app

import (
	"context"
	"fmt"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/storage"
	"github.com/cesargomez89/mekkompis/internal/store"
)

type ImageService struct {
	Repo   *store.DB
	Files  *storage.Store
	Logger *logger.Logger
}

func NewImageService(repo *store.DB, files *storage.Store, log *logger.Logger) *ImageService {
	return &ImageService{Repo: repo, Files: files, Logger: log}
}

// Upload attaches an image to a job. The job is looked up before anything
// is written to disk.
func (s *ImageService) Upload(ctx context.Context, jobID int64, upload storage.Upload) (*domain.Image, error) {
	if _, err := s.Repo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	name, err := s.Files.Save(upload)
	if err != nil {
		return nil, err
	}

	id, err := s.Repo.CreateImage(ctx, &domain.Image{JobID: jobID, Filename: name, OriginalName: upload.Filename})
	if err != nil {
		s.Files.RemoveQuietly(name)
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	s.Logger.Info("Image uploaded", "image_id", id, "job_id", jobID, "filename", name)
	return s.Repo.GetImage(ctx, id)
}

func (s *ImageService) Delete(ctx context.Context, id int64) error {
	img, err := s.Repo.GetImage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteImage(ctx, id); err != nil {
		return err
	}
	s.Files.RemoveQuietly(img.Filename)
	s.Logger.Info("Image deleted", "image_id", id, "job_id", img.JobID)
	return nil
}
