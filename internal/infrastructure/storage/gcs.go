package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

// objectWriterFunc opens a writer for an object name.
type objectWriterFunc func(ctx context.Context, name string) io.WriteCloser

// GCSStore uploads each module as <prefix>/<module id>.json.
type GCSStore struct {
	prefix    string
	newWriter objectWriterFunc
}

var _ ports.ContentStore = (*GCSStore)(nil)

// NewGCSStore writes into bucket under prefix.
func NewGCSStore(client *gcs.Client, bucket, prefix string) *GCSStore {
	handle := client.Bucket(bucket)
	return &GCSStore{
		prefix: prefix,
		newWriter: func(ctx context.Context, name string) io.WriteCloser {
			w := handle.Object(name).NewWriter(ctx)
			w.ContentType = "application/json"
			return w
		},
	}
}

// ObjectName returns the object a module is uploaded to.
func (s *GCSStore) ObjectName(moduleID string) string {
	return path.Join(s.prefix, moduleID+".json")
}

// StoreModules uploads every module, replacing earlier versions.
func (s *GCSStore) StoreModules(ctx context.Context, modules []domain.ContentModule) error {
	for _, module := range modules {
		raw, err := encodeModule(module)
		if err != nil {
			return err
		}
		name := s.ObjectName(module.ID)
		w := s.newWriter(ctx, name)
		if _, err := w.Write(raw); err != nil {
			_ = w.Close()
			return fmt.Errorf("upload %s: %w", name, err)
		}
		// the upload is only committed on Close
		if err := w.Close(); err != nil {
			return fmt.Errorf("finalize %s: %w", name, err)
		}
	}
	return nil
}
