package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/pkg/httputil"
	"github.com/clinichq/clinic-api/pkg/logger"
)

// Recovery turns panics into 500s instead of dropped connections.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(fmt.Errorf("%v", r), "request panic recovered",
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(ContextRequestID))

				c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.Response{
					Success: false,
					Error: &httputil.Error{
						Code:    http.StatusInternalServerError,
						Message: "internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}
