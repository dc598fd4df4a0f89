package handlers

import (
	"errors"
	"net/http"

	"anonboard/internal/services"
	"anonboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type postRequest struct {
	AnonName string `json:"anon_name"`
	Content  string `json:"content"`
}

// List returns every post with counters and comment counts.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := services.ListPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list posts"})
		return
	}

	out := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		out = append(out, gin.H{
			"id":        post.ID,
			"uuid":      post.UUID,
			"anon_name": displayName(c, post.AnonName),
			"content":   post.Content,
			"likes":     post.Likes,
			"dislikes":  post.Dislikes,
			"comments":  post.CommentCount,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Create stores a new post and returns its token.
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnonName == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "anon_name and content are required"})
		return
	}

	post, err := services.CreatePost(req.AnonName, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
		return
	}

	recordActivity(c, req.AnonName, services.ActionPost, req.Content)
	c.JSON(http.StatusCreated, gin.H{"message": "Post created", "uuid": post.UUID})
}

// Delete removes a post and everything hanging off it. Moderator only;
// the route is gated by middleware.ModeratorRequired.
func (h *PostHandler) Delete(c *gin.Context) {
	name, err := requireModerator(c)
	if errors.Is(err, services.ErrUnauthorized) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	if err := services.DeletePost(utils.StringToUint(idStr)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
		return
	}

	recordActivity(c, name, services.ActionDeletePost, idStr)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
