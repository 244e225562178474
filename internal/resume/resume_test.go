package resume

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/storage"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func newManager(max int64) (*Manager, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewManager(storage.NewDiskStore(fs, "uploads"), "developer", max), fs
}

func TestSave_PDF(t *testing.T) {
	m, fs := newManager(1 << 20)
	r, err := m.Save(context.Background(), "cv.pdf", bytes.NewReader(pdf))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", r.Mimetype)
	require.Equal(t, "cv.pdf", r.OriginalName)
	require.Equal(t, int64(len(pdf)), r.Size)
	require.True(t, strings.HasPrefix(r.Filename, "developer-resumes/developer-"))
	require.True(t, strings.HasSuffix(r.Filename, ".pdf"))

	ok, _ := afero.Exists(fs, "uploads/"+r.Filename)
	require.True(t, ok)

	rc, err := m.Open(context.Background(), r)
	require.NoError(t, err)
	got, _ := io.ReadAll(rc)
	rc.Close()
	require.Equal(t, pdf, got)

	m.Remove(context.Background(), r)
	ok, _ = afero.Exists(fs, "uploads/"+r.Filename)
	require.False(t, ok)
}

func TestSave_RejectsTypeAndSize(t *testing.T) {
	m, _ := newManager(16)
	_, err := m.Save(context.Background(), "notes.txt", strings.NewReader("hello"))
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = m.Save(context.Background(), "cv.pdf", bytes.NewReader(pdf))
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = m.Save(context.Background(), "empty.pdf", bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrMissing)
}

func TestSentinelsFollowErrorStringConvention(t *testing.T) {
	for _, err := range []error{ErrMissing, ErrTooLarge, ErrUnsupportedType} {
		msg := err.Error()
		require.Equal(t, strings.ToLower(msg[:1]), msg[:1], msg)
		require.False(t, strings.HasSuffix(msg, "."), msg)
	}
}

func TestSaveFile_FromMultipart(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, _ = fw.Write(pdf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	_, fh, err := req.FormFile("resume")
	require.NoError(t, err)

	m, _ := newManager(1 << 20)
	r, err := m.SaveFile(context.Background(), fh)
	require.NoError(t, err)
	require.Equal(t, "cv.pdf", r.OriginalName)

	_, err = m.SaveFile(context.Background(), nil)
	require.ErrorIs(t, err, ErrMissing)
}
