package middleware

import (
	"time"

	"notesapi/logging"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

// AccessLogMiddleware writes one line per request after it completes.
func AccessLogMiddleware(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		browser, os, device := utils.ParseUserAgent(c.Request.UserAgent())

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
			"browser", browser,
			"os", os,
			"device", device,
		}
		if userID, _, ok := Identity(c); ok {
			args = append(args, "user_id", userID)
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Error(ctx, "request", args...)
		case status >= 400:
			log.Warn(ctx, "request", args...)
		default:
			log.Info(ctx, "request", args...)
		}
	}
}
