package handler

import (
	"net/http"
	"strconv"

	"estateportal/internal/model"
	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

// ListingHandler handles the public listing endpoints
type ListingHandler struct {
	listings *service.ListingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listings *service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// List handles GET /api/v1/properties
func (h *ListingHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := h.listings.Search(c.Request.Context(), service.ListingParams{
		Term:     c.Query("q"),
		Category: c.DefaultQuery("category", model.CategoryAll),
		Sort:     model.SortKey(c.DefaultQuery("sort", string(model.SortNewest))),
		Page:     page,
	})
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/properties/:id
func (h *ListingHandler) Get(c *gin.Context) {
	property, err := h.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusOK, property)
}

// Similar handles GET /api/v1/properties/:id/similar
func (h *ListingHandler) Similar(c *gin.Context) {
	properties, err := h.listings.Similar(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}
