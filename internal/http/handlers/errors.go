package handlers

import (
	"errors"
	"net/http"

	"taskmanager/internal/domain"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

const msgServerError = "Server error"

func respondError(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) && de.Code != domain.CodeInternal {
		c.JSON(de.Code.HTTPStatus(), gin.H{"message": de.Message})
		return
	}

	logger.WithContext(c.Request.Context()).Error("request failed",
		"method", c.Request.Method,
		"route", c.FullPath(),
		"error", err,
	)
	body := gin.H{"message": msgServerError}
	if middleware.ErrorDetail() {
		body["stack"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
