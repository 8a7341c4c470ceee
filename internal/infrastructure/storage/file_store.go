package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

// FileStore writes each module to <dir>/<module id>.json.
type FileStore struct {
	dir string
}

var _ ports.ContentStore = (*FileStore)(nil)

// NewFileStore stores modules under dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file a module is written to.
func (s *FileStore) Path(moduleID string) string {
	return filepath.Join(s.dir, moduleID+".json")
}

// StoreModules writes every module, replacing earlier versions.
func (s *FileStore) StoreModules(ctx context.Context, modules []domain.ContentModule) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}
	for _, module := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !safeFileID(module.ID) {
			return fmt.Errorf("write module %q: id is not a plain file name", module.ID)
		}
		raw, err := encodeModule(module)
		if err != nil {
			return err
		}
		if err := os.WriteFile(s.Path(module.ID), raw, 0o644); err != nil {
			return fmt.Errorf("write module %s: %w", module.ID, err)
		}
	}
	return nil
}

func safeFileID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func encodeModule(module domain.ContentModule) ([]byte, error) {
	raw, err := json.MarshalIndent(module, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal module %s: %w", module.ID, err)
	}
	return append(raw, '\n'), nil
}
