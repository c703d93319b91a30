package handler

import (
	"errors"
	"io"
	"net/http"

	"estateportal/internal/model"
	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AssistantHandler serves chat sessions with the property search assistant
type AssistantHandler struct {
	sessions  *service.SessionStore
	listings  *service.ListingService
	completer service.Completer
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(sessions *service.SessionStore, listings *service.ListingService, completer service.Completer) *AssistantHandler {
	return &AssistantHandler{
		sessions:  sessions,
		listings:  listings,
		completer: completer,
	}
}

// Create handles POST /api/v1/assistant/sessions.
// The session searches the listing page selected by the optional filters.
func (h *AssistantHandler) Create(c *gin.Context) {
	var req model.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	page, err := h.listings.Search(c.Request.Context(), service.ListingParams{
		Term:     req.Term,
		Category: req.Category,
		Sort:     req.Sort,
		Page:     req.Page,
	})
	if err != nil {
		respondError(c, err, "")
		return
	}

	session := h.sessions.Create(page.Properties)
	c.JSON(http.StatusCreated, session.Snapshot())
}

// Get handles GET /api/v1/assistant/sessions/:id
func (h *AssistantHandler) Get(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// Submit handles POST /api/v1/assistant/sessions/:id/messages
func (h *AssistantHandler) Submit(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req model.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Message is required",
			"kind":  service.KindInputValidation,
		})
		return
	}

	turn, err := session.Submit(detached(c), h.completer, req.Message)
	if err != nil {
		respondError(c, err, "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":   turn,
		"session": session.Snapshot(),
	})
}

// Close handles DELETE /api/v1/assistant/sessions/:id
func (h *AssistantHandler) Close(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
