package catalog

import (
	"context"
	"fmt"
)

// Source loads a complete catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
	Name() string
}

// FileSource reads the catalog from a JSON file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := LoadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Path, err)
	}
	return c, nil
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}
