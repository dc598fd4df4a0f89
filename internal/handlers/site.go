package handlers

import (
	"log"
	"net/http"

	"anonboard/internal/services"

	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	indexFile string
}

func NewSiteHandler(indexFile string) *SiteHandler {
	return &SiteHandler{indexFile: indexFile}
}

// Index records one visitor ping and serves the frontend page. The ping
// failing is not a reason to refuse the page.
func (h *SiteHandler) Index(c *gin.Context) {
	if err := services.RecordVisitor(); err != nil {
		log.Printf("Failed to record visitor: %v", err)
	}
	c.File(h.indexFile)
}

// Stats returns aggregate visitor and post counts.
func (h *SiteHandler) Stats(c *gin.Context) {
	stats, err := services.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
