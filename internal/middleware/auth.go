package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-insights-api/internal/constants"
	apierrors "github.com/yukikurage/team-insights-api/internal/errors"
	"github.com/yukikurage/team-insights-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session. The session is
// written by the authentication service in front of this API.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := models.NormalizeID(session.Get(constants.ContextKeyUserID))

		if userID.IsZero() {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (models.ID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	userID := models.NormalizeID(value)
	return userID, !userID.IsZero()
}
