package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	catalogout "studydesk/internal/modules/catalog/port/out"
)

// DirExportSink writes exports into a single directory.
type DirExportSink struct {
	dir string
}

func NewDirExportSink(dir string) catalogout.ExportSink {
	return &DirExportSink{dir: dir}
}

func (s *DirExportSink) Write(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
