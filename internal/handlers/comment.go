package handlers

import (
	"errors"
	"net/http"

	"anonboard/internal/services"
	"anonboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type commentRequest struct {
	AnonName string `json:"anon_name"`
	Content  string `json:"content"`
}

// List returns the comments on a post, oldest first.
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := services.ListComments(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list comments"})
		return
	}

	out := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		out = append(out, gin.H{
			"id":        comment.ID,
			"anon_name": displayName(c, comment.AnonName),
			"content":   comment.Content,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Create attaches a comment to the post whose token is in the route.
func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnonName == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "anon_name and content are required"})
		return
	}

	_, err := services.CreateComment(c.Param("id"), req.AnonName, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add comment"})
		return
	}

	recordActivity(c, req.AnonName, services.ActionComment, req.Content)
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added"})
}

// Delete removes a single comment. Moderator only.
func (h *CommentHandler) Delete(c *gin.Context) {
	name, err := requireModerator(c)
	if errors.Is(err, services.ErrUnauthorized) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	if err := services.DeleteComment(utils.StringToUint(idStr)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete comment"})
		return
	}

	recordActivity(c, name, services.ActionDeleteComment, idStr)
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
