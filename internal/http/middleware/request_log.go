package middleware

import (
	"log/slog"
	"time"

	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags each request with an id, stores a scoped logger in the
// request context and logs the outcome once the handler chain returns.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}
		c.Header(HeaderRequestID, reqID)

		l := logger.Get().With("request_id", reqID)
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), l))

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.WithContext(c.Request.Context()).Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
