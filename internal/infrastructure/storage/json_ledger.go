package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

// JSONLedger keeps completion records in a single JSON file that is
// rewritten on every append. It does no locking; concurrent writers can
// lose updates.
type JSONLedger struct {
	path string
}

var _ ports.CompletionLedger = (*JSONLedger)(nil)

type ledgerFile struct {
	CompletedItems []domain.CompletionRecord `json:"completedItems"`
}

// NewJSONLedger uses the file at path. The file need not exist yet.
func NewJSONLedger(path string) *JSONLedger {
	return &JSONLedger{path: path}
}

// Load reads every record. A missing file is an empty ledger.
func (l *JSONLedger) Load(_ context.Context) ([]domain.CompletionRecord, error) {
	raw, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.CompletionRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var file ledgerFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", l.path, err)
	}
	if file.CompletedItems == nil {
		file.CompletedItems = []domain.CompletionRecord{}
	}
	return file.CompletedItems, nil
}

// Append adds a record and rewrites the file.
func (l *JSONLedger) Append(ctx context.Context, record domain.CompletionRecord) error {
	records, err := l.Load(ctx)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(ledgerFile{CompletedItems: append(records, record)}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	if err := os.WriteFile(l.path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
