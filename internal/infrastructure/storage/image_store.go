package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"NewsCurator/internal/ports"
)

// LocalImageStore persists generated images to a local directory served
// at a public root-relative path. Filenames are fresh UUIDs, so
// concurrent writes never collide and no lookup is required.
type LocalImageStore struct {
	dir        string
	publicRoot string
}

var _ ports.ImageStore = (*LocalImageStore)(nil)

// NewLocalImageStore wires the on-disk directory and the public path it
// is served under (e.g. /images/generated).
func NewLocalImageStore(dir, publicRoot string) *LocalImageStore {
	if !strings.HasPrefix(publicRoot, "/") {
		publicRoot = "/" + publicRoot
	}
	return &LocalImageStore{dir: dir, publicRoot: publicRoot}
}

// Save writes the image under a unique name and returns its
// root-relative public path.
func (s *LocalImageStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to store empty image")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	name := uuid.NewString() + "." + strings.TrimPrefix(ext, ".")
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return path.Join(s.publicRoot, name), nil
}
