package storage

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/mekkompis/internal/constants"
	"github.com/cesargomez89/mekkompis/internal/logger"
)

var (
	ErrNotImage    = errors.New("only image files are allowed")
	ErrTooLarge    = errors.New("file exceeds upload size limit")
	ErrInvalidName = errors.New("invalid upload filename")
)

// Upload is a single file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store manages the upload directory. Files are flat, one level deep.
type Store struct {
	dir     string
	maxSize int64
	clock   clockwork.Clock
	logger  *logger.Logger
}

func NewStore(dir string, log *logger.Logger) (*Store, error) {
	return NewStoreWithClock(dir, log, clockwork.NewRealClock())
}

func NewStoreWithClock(dir string, log *logger.Logger, clock clockwork.Clock) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := EnsureDir(abs); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Store{
		dir:     abs,
		maxSize: constants.MaxUploadBytes,
		clock:   clock,
		logger:  log.WithComponent("uploads"),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// UniqueName builds the on-disk name for an uploaded file:
// <unix-millis>-<random>-<sanitized base><lowercased ext>. The base is
// shortened so the whole name fits in MaxFilenameLength bytes.
func (s *Store) UniqueName(original string) string {
	base, ext := SplitExt(SanitizeFilename(original))
	prefix := fmt.Sprintf("%d-%d-", s.clock.Now().UnixMilli(), rand.Intn(1_000_000_000))
	if len(ext) > constants.MaxFilenameLength-len(prefix) {
		ext = ""
	}
	if room := constants.MaxFilenameLength - len(prefix) - len(ext); len(base) > room {
		base = base[:room]
	}
	return prefix + base + ext
}

// Save validates and writes an upload, returning the stored filename.
// A partially written file is removed when the size limit is hit.
func (s *Store) Save(u Upload) (string, error) {
	if !strings.HasPrefix(strings.ToLower(u.ContentType), "image/") {
		return "", ErrNotImage
	}
	if u.Size > s.maxSize {
		return "", ErrTooLarge
	}

	name := s.UniqueName(u.Filename)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePermissions)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(u.Body, s.maxSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write upload file: %w", err)
	}

	s.logger.Debug("Stored upload", "filename", name, "bytes", n)
	return name, nil
}

// Path resolves a stored filename inside the upload directory.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	path := filepath.Join(s.dir, name)
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel != name {
		return "", ErrInvalidName
	}
	return path, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	return RemoveFile(path)
}

// RemoveQuietly deletes each named file and logs failures instead of
// returning them. Used after the owning rows are already gone.
func (s *Store) RemoveQuietly(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := s.Remove(name); err != nil {
			s.logger.Warn("Failed to remove upload", "filename", name, "error", err)
		}
	}
}

// Sweep removes regular files that no row references and that are older
// than the grace period. It returns the names it deleted.
func (s *Store) Sweep(referenced map[string]struct{}, grace time.Duration) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	cutoff := s.clock.Now().Add(-grace)
	var removed []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if _, ok := referenced[name]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("stat %s: %w", name, err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := RemoveFile(filepath.Join(s.dir, name)); err != nil {
			s.logger.Warn("Failed to remove orphaned upload", "filename", name, "error", err)
			continue
		}
		removed = append(removed, name)
	}

	if len(removed) > 0 {
		s.logger.Info("Swept orphaned uploads", "count", len(removed))
	}
	return removed, nil
}
