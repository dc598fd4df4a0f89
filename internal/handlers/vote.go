package handlers

import (
	"errors"
	"net/http"

	"anonboard/internal/models"
	"anonboard/internal/services"
	"anonboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// Like handles a like on a post. The voter key is the Anon-Name header,
// taken at face value: two clients using the same name are the same
// voter as far as the ledger is concerned.
func (h *VoteHandler) Like(c *gin.Context) {
	h.vote(c, models.VoteLike)
}

// Dislike handles a dislike on a post.
func (h *VoteHandler) Dislike(c *gin.Context) {
	h.vote(c, models.VoteDislike)
}

func (h *VoteHandler) vote(c *gin.Context, value int) {
	voter := c.GetHeader("Anon-Name")
	if voter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Anon-Name header required"})
		return
	}

	postID := utils.StringToUint(c.Param("id"))
	likes, dislikes, err := services.ApplyVote(postID, voter, value)
	if err != nil {
		var already *services.AlreadyVotedError
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		case errors.As(err, &already):
			if already.Value == models.VoteLike {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Already liked"})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Already disliked"})
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to apply vote"})
		}
		return
	}

	if value == models.VoteLike {
		recordActivity(c, voter, services.ActionLike, "")
		c.JSON(http.StatusOK, gin.H{"likes": likes})
	} else {
		recordActivity(c, voter, services.ActionDislike, "")
		c.JSON(http.StatusOK, gin.H{"dislikes": dislikes})
	}
}
