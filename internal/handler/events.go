package handler

import (
	"net/http"

	"estateportal/internal/middleware"
	"estateportal/internal/model"
	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler handles analytics events from the frontend
type EventHandler struct {
	events *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Track handles POST /api/v1/events
func (h *EventHandler) Track(c *gin.Context) {
	var req model.AnalyticsEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if userID, ok := middleware.UserID(c); ok {
		req.UserID = &userID
	}

	if err := h.events.Track(c.Request.Context(), &req); err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, model.EventResponse{
		Success: true,
		Message: "Event logged successfully",
	})
}
