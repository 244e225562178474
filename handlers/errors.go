package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/apperr"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/logger"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

// writeError maps a service error onto the response envelope.
func writeError(c *gin.Context, err error) {
	var verrs validation.Errors
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		response.Validation(c, verrs)
	case errors.Is(err, database.ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "Invalid id", "INVALID_ID")
	case errors.As(err, &tooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large", "PAYLOAD_TOO_LARGE")
	default:
		if ae, ok := apperr.As(err); ok {
			response.Error(c, statusOf(ae.Kind), ae.Message, ae.Code)
			return
		}
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindInvalid:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// outcome classifies a submission result for the form metrics.
func outcome(err error) string {
	if err == nil {
		return "created"
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return "invalid"
	}
	if ae, ok := apperr.As(err); ok {
		switch ae.Kind {
		case apperr.KindInvalid:
			return "invalid"
		case apperr.KindConflict:
			if ae.Code == "DUPLICATE_EMAIL" || ae.Code == "ALREADY_SUBSCRIBED" {
				return "duplicate"
			}
			return "conflict"
		}
	}
	return "error"
}
