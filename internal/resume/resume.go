// Package resume validates uploaded CV files and hands them to a storage.Store.
package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/storage"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/logger"
)

var (
	ErrMissing         = errors.New("resume file is missing or empty")
	ErrTooLarge        = errors.New("resume exceeds the size limit")
	ErrUnsupportedType = errors.New("resume is not a PDF, DOC or DOCX file")
)

// allowed maps the accepted content types to the extension used for the stored key.
var allowed = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Manager stores resumes under "<prefix>-resumes/<prefix>-<uuid><ext>".
type Manager struct {
	store    storage.Store
	prefix   string
	maxBytes int64
}

func NewManager(store storage.Store, prefix string, maxBytes int64) *Manager {
	return &Manager{store: store, prefix: prefix, maxBytes: maxBytes}
}

// SaveFile reads fh, checks its size and sniffed type and stores it.
func (m *Manager) SaveFile(ctx context.Context, fh *multipart.FileHeader) (*models.Resume, error) {
	if fh == nil {
		return nil, ErrMissing
	}
	if fh.Size > m.maxBytes {
		return nil, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return m.Save(ctx, fh.Filename, f)
}

// Save stores the content of r under a fresh key.
func (m *Manager) Save(ctx context.Context, originalName string, r io.Reader) (*models.Resume, error) {
	data, err := io.ReadAll(io.LimitReader(r, m.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > m.maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrMissing
	}
	contentType, ext, ok := detect(data)
	if !ok {
		return nil, ErrUnsupportedType
	}
	key := fmt.Sprintf("%s-resumes/%s-%s%s", m.prefix, m.prefix, uuid.NewString(), ext)
	if err := m.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}
	return &models.Resume{
		Filename:     key,
		OriginalName: originalName,
		Mimetype:     contentType,
		Size:         int64(len(data)),
		UploadDate:   time.Now().UTC(),
	}, nil
}

// Open returns the stored body of r.
func (m *Manager) Open(ctx context.Context, r *models.Resume) (io.ReadCloser, error) {
	if r == nil || r.Filename == "" {
		return nil, storage.ErrNotFound
	}
	return m.store.Open(ctx, r.Filename)
}

// Remove deletes the stored file; failures are logged, not returned.
func (m *Manager) Remove(ctx context.Context, r *models.Resume) {
	if r == nil || r.Filename == "" {
		return
	}
	if err := m.store.Delete(ctx, r.Filename); err != nil {
		logger.Warnf("remove resume %s: %v", r.Filename, err)
	}
}

func detect(data []byte) (string, string, bool) {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		if ext, ok := allowed[mt.String()]; ok {
			return mt.String(), ext, true
		}
	}
	return "", "", false
}
