package handlers

import (
	"errors"
	"io"

	"taskmanager/internal/http/middleware"
	"taskmanager/internal/service"
	"taskmanager/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

type Handler struct {
	Auth  *service.AuthService
	Tasks *service.TaskService
}

func NewHandler(auth *service.AuthService, tasks *service.TaskService) *Handler {
	return &Handler{Auth: auth, Tasks: tasks}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.UserID(c)
}

// bindJSON decodes the request body into obj. An empty body decodes as {}.
func bindJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validation.DecodeError(err)
	}
	return nil
}
