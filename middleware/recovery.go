package middleware

import (
	"fmt"
	"runtime/debug"

	"notesapi/logging"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns a panic into the standard 500 JSON body.
func RecoveryMiddleware(log logging.Logger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "panic recovered",
					"error", fmt.Sprint(r),
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey),
					"stack", string(debug.Stack()),
				)
				utils.TrackError("http", "panic")

				if exposeDetails {
					utils.InternalError(c, "Internal server error", fmt.Sprint(r))
					return
				}
				utils.InternalError(c, "Internal server error")
			}
		}()
		c.Next()
	}
}
