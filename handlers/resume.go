package handlers

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
)

// resumeFile returns the uploaded "resume" part, or nil when the request
// carries none. Only a body over the size limit is an error.
func resumeFile(c *gin.Context) (*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile("resume")
	if err == nil {
		return fh, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, err
	}
	return nil, nil
}

// streamResume sends a stored resume as an attachment under its original name.
func streamResume(c *gin.Context, rc io.ReadCloser, res *models.Resume) {
	defer rc.Close()
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": res.OriginalName})
	c.DataFromReader(http.StatusOK, res.Size, res.Mimetype, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}
