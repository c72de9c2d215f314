package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd.jpg", "etcpasswd.jpg"},
		{`..\..\windows\win.ini`, "windowswin.ini"},
		{"my bike (1).PNG", "my_bike__1_.PNG"},
		{"växellåda.jpg", "v_xell_da.jpg"},
		{"a....b.jpg", "ab.jpg"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if strings.ContainsAny(got, `/\`) || strings.Contains(got, "..") {
				t.Errorf("SanitizeFilename(%q) left unsafe characters: %q", tt.input, got)
			}
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 300) + ".jpg")
	if len(got) != 255 {
		t.Errorf("Expected length 255, got %d", len(got))
	}
	if !strings.HasSuffix(got, ".jpg") {
		t.Errorf("Expected extension to survive truncation, got %q", got[len(got)-8:])
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		input, base, ext string
	}{
		{"photo.JPG", "photo", ".jpg"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
	}

	for _, tt := range tests {
		base, ext := SplitExt(tt.input)
		if base != tt.base || ext != tt.ext {
			t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.input, base, ext, tt.base, tt.ext)
		}
	}
}

func TestRemoveFile_MissingIsOK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.jpg")
	if err := RemoveFile(path); err != nil {
		t.Errorf("Expected nil for missing file, got %v", err)
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveFile(path); err != nil {
		t.Errorf("RemoveFile failed: %v", err)
	}
	if _, err := os.Stat(path); !IsNotExist(err) {
		t.Errorf("Expected file to be gone, stat err = %v", err)
	}
}
