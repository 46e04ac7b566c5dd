package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"taskmanager/internal/domain"
	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserID = "user_id"
	ctxUser   = "user"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// JWT requires "Authorization: Bearer <token>" and stores the resolved user
// under "user" and its id under "user_id".
func JWT(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var de *domain.Error
			if !errors.As(err, &de) || de.Code != domain.CodeUnauthenticated {
				logger.WithContext(c.Request.Context()).Error("authenticate failed", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			logger.WithContext(c.Request.Context()).Debug("unauthorized request", "reason", de.Message, "error", de.Cause)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": de.Message})
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxUser, user)
		c.Request = c.Request.WithContext(logger.NewContext(
			c.Request.Context(),
			logger.WithContext(c.Request.Context()).With("user_id", user.ID),
		))
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserID returns the id set by JWT.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentUser returns the user set by JWT.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
