package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cesargomez89/mekkompis/internal/constants"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/storage"
	"github.com/cesargomez89/mekkompis/internal/store"
)

// UploadSweeper deletes upload files that no database row references.
// It reclaims files left behind when a best-effort removal failed.
type UploadSweeper struct {
	Repo   *store.DB
	Files  *storage.Store
	Logger *logger.Logger
	Grace  time.Duration
}

func NewUploadSweeper(repo *store.DB, files *storage.Store, log *logger.Logger) *UploadSweeper {
	return &UploadSweeper{Repo: repo, Files: files, Logger: log, Grace: constants.SweepGracePeriod}
}

func (s *UploadSweeper) Sweep(ctx context.Context) (int, error) {
	refs, err := s.Repo.ReferencedFilenames(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load referenced filenames: %w", err)
	}
	removed, err := s.Files.Sweep(refs, s.Grace)
	return len(removed), err
}

// Run is the cron entry point.
func (s *UploadSweeper) Run() {
	n, err := s.Sweep(context.Background())
	if err != nil {
		s.Logger.Error("Upload sweep failed", "error", err)
		return
	}
	s.Logger.Debug("Upload sweep finished", "removed", n)
}
