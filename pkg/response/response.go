// Package response writes the JSON envelope shared by every API route.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status     string           `json:"status"`
	Message    string           `json:"message,omitempty"`
	Code       string           `json:"code,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Errors     []string         `json:"errors,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Timestamp  string           `json:"timestamp"`
	Stack      string           `json:"stack,omitempty"`
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// Send writes env with the given status, filling status and timestamp when unset.
func Send(c *gin.Context, code int, env Envelope) {
	if env.Status == "" {
		if code >= http.StatusBadRequest {
			env.Status = StatusError
		} else {
			env.Status = StatusSuccess
		}
	}
	if env.Timestamp == "" {
		env.Timestamp = now()
	}
	c.JSON(code, env)
}

func OK(c *gin.Context, message string, data interface{}) {
	Send(c, http.StatusOK, Envelope{Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	Send(c, http.StatusCreated, Envelope{Message: message, Data: data})
}

// Page writes a list response with its pagination block.
func Page(c *gin.Context, data interface{}, meta pagination.Meta) {
	Send(c, http.StatusOK, Envelope{Data: data, Pagination: &meta})
}

// Error writes an error envelope. code may be empty.
func Error(c *gin.Context, status int, message, code string) {
	Send(c, status, Envelope{Message: message, Code: code})
}

// AbortError is Error followed by c.Abort for middleware.
func AbortError(c *gin.Context, status int, message, code string) {
	Error(c, status, message, code)
	c.Abort()
}

// Validation writes a 400 with the per-field messages.
func Validation(c *gin.Context, errs []string) {
	Send(c, http.StatusBadRequest, Envelope{Message: "Validation failed", Code: "VALIDATION_ERROR", Errors: errs})
}
