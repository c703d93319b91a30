package handler

import (
	"net/http"

	"estateportal/internal/model"
	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AIHandler exposes the completion gateway
type AIHandler struct {
	gateway *service.CompletionGateway
}

// NewAIHandler creates a new AI handler
func NewAIHandler(gateway *service.CompletionGateway) *AIHandler {
	return &AIHandler{gateway: gateway}
}

// Status handles GET /api/v1/ai/status
func (h *AIHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.gateway.Status())
}

// ValidateKey handles POST /api/v1/ai/validate-key
func (h *AIHandler) ValidateKey(c *gin.Context) {
	var req model.ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "API key is required and must be a string",
			"kind":  service.KindInputValidation,
		})
		return
	}

	resp, err := h.gateway.ValidateKey(detached(c), req.APIKey)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Complete handles POST /api/v1/ai/complete
func (h *AIHandler) Complete(c *gin.Context) {
	var req model.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
			"kind":  service.KindInputValidation,
		})
		return
	}

	text, err := h.gateway.Complete(detached(c), req.Prompt, req.Context)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, model.CompleteResponse{Text: text})
}

// Analyze handles POST /api/v1/ai/analyze
func (h *AIHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
			"kind":  service.KindInputValidation,
		})
		return
	}

	analysis, err := h.gateway.Analyze(detached(c), req.Properties)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, model.AnalyzeResponse{Analysis: analysis})
}
