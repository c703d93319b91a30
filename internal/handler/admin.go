package handler

import (
	"net/http"

	"estateportal/internal/middleware"
	"estateportal/internal/model"
	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListProperties handles GET /api/v1/admin/properties
func (h *AdminHandler) ListProperties(c *gin.Context) {
	properties, err := h.admin.ListProperties(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": orEmpty(properties)})
}

// CreateProperty handles POST /api/v1/admin/properties
func (h *AdminHandler) CreateProperty(c *gin.Context) {
	var req model.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := middleware.UserID(c)
	property, err := h.admin.CreateProperty(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles PUT /api/v1/admin/properties/:id
func (h *AdminHandler) UpdateProperty(c *gin.Context) {
	var req model.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	property, err := h.admin.UpdateProperty(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusOK, property)
}

// UpdatePropertyStatus handles PATCH /api/v1/admin/properties/:id/status
func (h *AdminHandler) UpdatePropertyStatus(c *gin.Context) {
	var req model.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.admin.UpdatePropertyStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}

// DeleteProperty handles DELETE /api/v1/admin/properties/:id
func (h *AdminHandler) DeleteProperty(c *gin.Context) {
	if err := h.admin.DeleteProperty(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReembedProperty handles POST /api/v1/admin/properties/:id/embedding
func (h *AdminHandler) ReembedProperty(c *gin.Context) {
	if err := h.admin.ReembedProperty(detached(c), c.Param("id")); err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListInquiries handles GET /api/v1/admin/inquiries
func (h *AdminHandler) ListInquiries(c *gin.Context) {
	inquiries, err := h.admin.ListInquiries(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": orEmpty(inquiries)})
}

// UpdateInquiryStatus handles PATCH /api/v1/admin/inquiries/:id/status
func (h *AdminHandler) UpdateInquiryStatus(c *gin.Context) {
	var req model.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.admin.UpdateInquiryStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err, "Inquiry not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}
