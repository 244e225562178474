// Package storage keeps uploaded resume files on local disk or in MinIO.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
)

var ErrNotFound = errors.New("stored object not found")

// Store is the minimal object store the resume flow depends on.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by cfg.Driver ("disk" or "minio").
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "disk":
		return NewDiskStore(afero.NewOsFs(), cfg.Dir), nil
	case "minio":
		return NewMinIOStorage(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
