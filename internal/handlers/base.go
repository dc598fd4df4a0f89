package handlers

import (
	"anonboard/internal/middleware"
	"anonboard/internal/services"

	"github.com/gin-gonic/gin"
)

// Badge marker rendered into display names for moderator viewers. The
// frontend styles it; the backend treats it as an opaque prefix.
const moderatorBadge = `<i class="fas fa-user-shield blue-moderator-icon"></i> `

// displayName renders an author name for the current requester. When the
// requester resolved as a moderator, every name gets the badge prefix —
// whose name it is does not matter. Quirky, but it is the board's
// long-standing behavior and the frontend depends on it.
func displayName(c *gin.Context, name string) string {
	if _, exists := c.Get(middleware.ModeratorKey); exists {
		return moderatorBadge + name
	}
	return name
}

// requireModerator returns the requester's resolved moderator name, or
// ErrUnauthorized when the identity middleware resolved none.
func requireModerator(c *gin.Context) (string, error) {
	name, exists := c.Get(middleware.ModeratorKey)
	if !exists {
		return "", services.ErrUnauthorized
	}
	return name.(string), nil
}

// recordActivity appends an audit line for the current request.
func recordActivity(c *gin.Context, anonName, action, content string) {
	services.GetActivityLog().Record(anonName, c.GetHeader("User-Agent"), c.ClientIP(), action, content)
}
