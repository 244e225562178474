package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResumeHidesStorageKey(t *testing.T) {
	r := Resume{Filename: "developer-resumes/developer-x.pdf", OriginalName: "cv.pdf", Mimetype: "application/pdf", Size: 10, UploadDate: time.Now()}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	require.NotContains(t, string(b), "developer-resumes")
	require.Contains(t, string(b), `"originalName":"cv.pdf"`)
}

func TestOneOf(t *testing.T) {
	require.True(t, OneOf("reviewing", ApplicationStatuses))
	require.False(t, OneOf("done", ApplicationStatuses))
	require.True(t, OneOf("high", Priorities))
}
