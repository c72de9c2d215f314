package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cesargomez89/mekkompis/internal/constants"
)

// SanitizeFilename reduces a client supplied filename to a safe single path
// element: separators and ".." are stripped, anything outside
// [A-Za-z0-9._-] becomes '_', and the result is capped at 255 bytes with the
// extension kept where it fits.
func SanitizeFilename(name string) string {
	name = strings.NewReplacer("/", "", "\\", "").Replace(name)
	name = strings.ReplaceAll(name, "..", "")

	mapped := strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(constants.AllowedFilenameChars, r) {
			return r
		}
		return '_'
	}, name)

	if len(mapped) <= constants.MaxFilenameLength {
		return mapped
	}
	ext := filepath.Ext(mapped)
	if len(ext) >= constants.MaxFilenameLength {
		return mapped[:constants.MaxFilenameLength]
	}
	return mapped[:constants.MaxFilenameLength-len(ext)] + ext
}

// SplitExt splits a sanitized filename into base and lowercased extension.
func SplitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	base = strings.TrimSuffix(name, ext)
	return base, strings.ToLower(ext)
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, constants.DirPermissions)
}

// RemoveFile deletes path, treating a file that is already gone as success.
func RemoveFile(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
