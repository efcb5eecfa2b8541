package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chibuzordev/owlow/internal/repository"
	"github.com/chibuzordev/owlow/internal/service"
)

// RecommendHandler handles search/recommendation HTTP requests
type RecommendHandler struct {
	svc *service.RecommendService
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(svc *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

// Recommend handles GET /api/v1/recommend?q=...&session_id=...
func (h *RecommendHandler) Recommend(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter: q"})
		return
	}
	sessionID := c.Query("session_id")

	response, err := h.svc.Recommend(c.Request.Context(), query, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNoListings) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no data available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
