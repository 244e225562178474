package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

// Recovery turns panics into a 500 envelope. With withStack the panic value
// and stack trace are included in the body.
func Recovery(log *zap.Logger, withStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			stack := string(debug.Stack())
			log.Error("panic recovered",
				zap.Any("panic", rec),
				zap.String("path", c.Request.URL.Path),
				zap.String("stack", stack),
			)
			env := response.Envelope{Message: "Internal server error", Code: "INTERNAL_ERROR"}
			if withStack {
				env.Stack = fmt.Sprintf("%v\n%s", rec, stack)
			}
			response.Send(c, http.StatusInternalServerError, env)
			c.Abort()
		}()
		c.Next()
	}
}
