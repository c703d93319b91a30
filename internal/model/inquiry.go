package model

import (
	"fmt"
	"strings"
	"time"
)

// InquiryStatus tracks how far the brokerage got with an inquiry
type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryScheduled InquiryStatus = "scheduled"
	InquiryClosed    InquiryStatus = "closed"
)

// Valid reports whether s is a known inquiry status
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryContacted, InquiryScheduled, InquiryClosed:
		return true
	}
	return false
}

// Inquiry represents a contact request, optionally about one property
type Inquiry struct {
	ID            string        `json:"id" db:"id"`
	PropertyID    *string       `json:"property_id,omitempty" db:"property_id"`
	UserID        *string       `json:"user_id,omitempty" db:"user_id"`
	Name          string        `json:"name" db:"name"`
	Email         string        `json:"email" db:"email"`
	Phone         string        `json:"phone" db:"phone"`
	Message       string        `json:"message" db:"message"`
	InquiryType   string        `json:"inquiry_type" db:"inquiry_type"`
	Status        InquiryStatus `json:"status" db:"status"`
	PropertyTitle *string       `json:"property_title,omitempty" db:"property_title"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// InquiryRequest is the public inquiry form payload
type InquiryRequest struct {
	PropertyID  *string `json:"property_id,omitempty"`
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone"`
	Message     string  `json:"message" binding:"required"`
	InquiryType string  `json:"inquiry_type"`
}

// Validate checks the inquiry form and fills defaults
func (r *InquiryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
	if r.Name == "" || r.Email == "" || r.Message == "" {
		return fmt.Errorf("name, email and message are required")
	}
	if r.InquiryType == "" {
		r.InquiryType = "general"
	}
	if r.PropertyID != nil && strings.TrimSpace(*r.PropertyID) == "" {
		r.PropertyID = nil
	}
	return nil
}

// StatusUpdateRequest changes the status of a property or an inquiry
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// SavedProperty is a property bookmarked by a user
type SavedProperty struct {
	ID         string    `json:"id" db:"id"`
	PropertyID string    `json:"property_id" db:"property_id"`
	Title      string    `json:"title" db:"title"`
	Price      int64     `json:"price" db:"price"`
	Location   string    `json:"location" db:"location"`
	Category   Category  `json:"property_type" db:"property_type"`
	Status     Status    `json:"status" db:"status"`
	CoverImage *string   `json:"cover_image,omitempty" db:"cover_image"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SavePropertyRequest bookmarks a property for the current user
type SavePropertyRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
}

// AnalyticsEvent is a page or engagement event sent by the frontend
type AnalyticsEvent struct {
	EventType  string  `json:"event_type" binding:"required"`
	PageURL    *string `json:"page_url,omitempty"`
	PropertyID *string `json:"property_id,omitempty"`
	UserID     *string `json:"-"`
	Metadata   JSONMap `json:"metadata,omitempty"`
}

// EventResponse acknowledges an analytics event
type EventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
