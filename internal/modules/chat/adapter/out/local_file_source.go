package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	chatout "studydesk/internal/modules/chat/port/out"
	apperrors "studydesk/internal/platform/errors"
)

const maxUploadBytes = 20 << 20

type LocalFileSource struct{}

func NewLocalFileSource() chatout.FileSource {
	return &LocalFileSource{}
}

func (s *LocalFileSource) Open(_ context.Context, path string) (string, []byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return "", nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s is a directory", apperrors.ErrInvalidInput, path)
	}
	if info.Size() > maxUploadBytes {
		return "", nil, fmt.Errorf("%w: %s is larger than %d bytes", apperrors.ErrInvalidInput, path, maxUploadBytes)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return filepath.Base(path), b, nil
}
