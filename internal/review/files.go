package review

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

// ModuleFile is a decoded module with the path it came from.
type ModuleFile struct {
	Path   string
	Module domain.ContentModule
}

// CollectModuleFiles returns the explicit inputs followed by every .json file
// of each directory, in directory order.
func CollectModuleFiles(inputs, dirs []string) ([]string, error) {
	files := make([]string, 0, len(inputs))
	files = append(files, inputs...)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
				continue
			}
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// LoadModuleFiles decodes each file. Files that hold valid JSON but not a
// module are skipped; unreadable or malformed files are errors.
func LoadModuleFiles(paths []string) ([]ModuleFile, error) {
	out := make([]ModuleFile, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read module %s: %w", path, err)
		}
		module, err := domain.DecodeModule(raw)
		if errors.Is(err, domain.ErrNotModule) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, ModuleFile{Path: path, Module: module})
	}
	return out, nil
}

// Modules returns just the decoded modules.
func Modules(files []ModuleFile) []domain.ContentModule {
	out := make([]domain.ContentModule, 0, len(files))
	for _, f := range files {
		out = append(out, f.Module)
	}
	return out
}
