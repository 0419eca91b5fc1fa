package out

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "studydesk/internal/platform/errors"
)

func TestLocalFileSourceReadsFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "lecture.txt")
	if err := os.WriteFile(path, []byte("photosynthesis"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	name, data, err := NewLocalFileSource().Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if name != "lecture.txt" || string(data) != "photosynthesis" {
		t.Fatalf("unexpected result %q %q", name, data)
	}
}

func TestLocalFileSourceRejectsMissingAndDirs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := NewLocalFileSource()
	if _, _, err := src.Open(context.Background(), filepath.Join(dir, "nope.pdf")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := src.Open(context.Background(), dir); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for a directory, got %v", err)
	}
}
