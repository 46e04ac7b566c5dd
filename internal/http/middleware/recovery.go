package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

var errorDetail atomic.Bool

// SetErrorDetail controls whether 500 responses carry the error text under
// "stack". Enabled only in development.
func SetErrorDetail(on bool) {
	errorDetail.Store(on)
}

// ErrorDetail reports the value last passed to SetErrorDetail.
func ErrorDetail() bool {
	return errorDetail.Load()
}

// Recovery turns a panic into a 500 with the generic error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		stack := string(debug.Stack())
		logger.WithContext(c.Request.Context()).Error("panic recovered",
			"panic", fmt.Sprint(recovered),
			"stack", stack,
		)
		body := gin.H{"message": "Server error"}
		if ErrorDetail() {
			body["stack"] = fmt.Sprintf("%v\n%s", recovered, stack)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
