package middleware

import (
	"net/http"

	"anonboard/internal/services"

	"github.com/gin-gonic/gin"
)

const ModeratorKey = "moderator_name"

// ResolveIdentity classifies the request's User-Agent against the
// moderator roster and stashes the resolved name in the context. It runs
// on every request so roster edits apply without a restart.
func ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if name, ok := services.GetModeratorService().Classify(c.GetHeader("User-Agent")); ok {
			c.Set(ModeratorKey, name)
		}
		c.Next()
	}
}

// ModeratorRequired rejects requests whose identity did not resolve to a
// moderator. Must run after ResolveIdentity.
func ModeratorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ModeratorKey); !exists {
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
