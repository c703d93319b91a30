package handler

import (
	"net/http"

	"estateportal/internal/middleware"
	"estateportal/internal/model"
	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles inquiries and the signed-in user's dashboard
type AccountHandler struct {
	account *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(account *service.AccountService) *AccountHandler {
	return &AccountHandler{account: account}
}

// SubmitInquiry handles POST /api/v1/inquiries
func (h *AccountHandler) SubmitInquiry(c *gin.Context) {
	var req model.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var userID *string
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	inquiry, err := h.account.SubmitInquiry(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// MyInquiries handles GET /api/v1/me/inquiries
func (h *AccountHandler) MyInquiries(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	inquiries, err := h.account.ListInquiries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": orEmpty(inquiries)})
}

// ListSaved handles GET /api/v1/me/saved
func (h *AccountHandler) ListSaved(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	saved, err := h.account.ListSaved(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": orEmpty(saved)})
}

// Save handles POST /api/v1/me/saved
func (h *AccountHandler) Save(c *gin.Context) {
	var req model.SavePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.account.SaveProperty(c.Request.Context(), userID, req.PropertyID); err != nil {
		respondError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveSaved handles DELETE /api/v1/me/saved/:propertyId
func (h *AccountHandler) RemoveSaved(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	if err := h.account.RemoveSaved(c.Request.Context(), userID, c.Param("propertyId")); err != nil {
		respondError(c, err, "Saved property not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
