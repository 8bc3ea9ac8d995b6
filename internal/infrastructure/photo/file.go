// Package photo provides PhotoSource implementations. In the headless CLI a
// file path stands in for the camera or gallery capability.
package photo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

// FileSource yields the image at Path. A refused or missing file maps onto
// the same taxonomy a denied camera/gallery permission would.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Pick(_ context.Context) (ports.Photo, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		if os.IsPermission(err) {
			return ports.Photo{}, fmt.Errorf("%w: photo %s", domain.ErrPermissionDenied, s.Path)
		}
		return ports.Photo{}, fmt.Errorf("photo: %w", err)
	}
	if info.IsDir() {
		return ports.Photo{}, fmt.Errorf("photo: %s is a directory", s.Path)
	}

	path := s.Path
	return ports.Photo{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
