package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chibuzordev/owlow/internal/repository"
	"github.com/chibuzordev/owlow/internal/service"
)

// AnalyzeHandler handles batch-analysis HTTP requests
type AnalyzeHandler struct {
	svc *service.RecommendService
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(svc *service.RecommendService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

// Analyze handles POST /api/v1/analyze?use_llm=true
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	useLLM := true
	if raw := c.Query("use_llm"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid use_llm value: " + raw})
			return
		}
		useLLM = parsed
	}

	response, err := h.svc.RunBatchAnalysis(c.Request.Context(), useLLM)
	if err != nil {
		if errors.Is(err, repository.ErrNoListings) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no data available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
