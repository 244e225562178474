package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
)

func TestDiskStore_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewDiskStore(fs, "uploads")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "developer-resumes/developer-1.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf"))
	ok, err := afero.Exists(fs, "uploads/developer-resumes/developer-1.pdf")
	require.NoError(t, err)
	require.True(t, ok)

	rc, err := s.Open(ctx, "developer-resumes/developer-1.pdf")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "%PDF-1.4", string(b))

	require.NoError(t, s.Delete(ctx, "developer-resumes/developer-1.pdf"))
	_, err = s.Open(ctx, "developer-resumes/developer-1.pdf")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete(ctx, "developer-resumes/developer-1.pdf"))
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	s := NewDiskStore(afero.NewMemMapFs(), "uploads")
	require.Error(t, s.Put(context.Background(), "../etc/passwd", strings.NewReader("x"), 1, ""))
	_, err := s.Open(context.Background(), "")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	st, err := New(config.StorageConfig{Driver: "disk", Dir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &DiskStore{}, st)

	_, err = New(config.StorageConfig{Driver: "minio"})
	require.Error(t, err)

	_, err = New(config.StorageConfig{Driver: "ftp"})
	require.Error(t, err)
}
