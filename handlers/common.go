package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/metrics"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

// guarded prepends admin to h when admin auth is configured.
func guarded(admin gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if admin == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{admin, h}
}

// bind decodes a JSON or form body into dst, writing a 400 on malformed input.
// Field rules are checked by the services, not here.
func bind(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBind(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large", "PAYLOAD_TOO_LARGE")
		return false
	}
	response.Error(c, http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
	return false
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

func page(c *gin.Context) pagination.Page {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}

func recordSubmission(form string, err error) {
	recordSubmissionOutcome(form, outcome(err))
}

func recordSubmissionOutcome(form, result string) {
	metrics.FormSubmissions.WithLabelValues(form, result).Inc()
}
