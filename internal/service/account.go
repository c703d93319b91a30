package service

import (
	"context"
	"log"
	"strings"

	"estateportal/internal/model"
)

// AccountStore persists inquiries and saved properties
type AccountStore interface {
	PropertyExists(ctx context.Context, id string) (bool, error)
	CreateInquiry(ctx context.Context, req *model.InquiryRequest, userID *string) (*model.Inquiry, error)
	ListInquiriesByUser(ctx context.Context, userID string) ([]model.Inquiry, error)
	SaveProperty(ctx context.Context, userID, propertyID string) error
	ListSavedProperties(ctx context.Context, userID string) ([]model.SavedProperty, error)
	RemoveSavedProperty(ctx context.Context, userID, propertyID string) (bool, error)
}

// AccountService handles inquiries and the signed-in user's dashboard
type AccountService struct {
	store AccountStore
}

// NewAccountService creates an account service
func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// SubmitInquiry records a contact request. userID is nil for anonymous visitors.
func (s *AccountService) SubmitInquiry(ctx context.Context, req *model.InquiryRequest, userID *string) (*model.Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidInput("%v", err)
	}
	if req.PropertyID != nil {
		id := strings.TrimSpace(*req.PropertyID)
		if err := s.requireProperty(ctx, id); err != nil {
			return nil, err
		}
		req.PropertyID = &id
	}

	inquiry, err := s.store.CreateInquiry(ctx, req, userID)
	if err != nil {
		return nil, err
	}
	log.Printf("📨 Inquiry received: %s (%s)", inquiry.ID, inquiry.InquiryType)
	return inquiry, nil
}

// ListInquiries returns the inquiries a user submitted
func (s *AccountService) ListInquiries(ctx context.Context, userID string) ([]model.Inquiry, error) {
	return s.store.ListInquiriesByUser(ctx, userID)
}

// SaveProperty bookmarks a property. Saving twice is a no-op.
func (s *AccountService) SaveProperty(ctx context.Context, userID, propertyID string) error {
	propertyID = strings.TrimSpace(propertyID)
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.store.SaveProperty(ctx, userID, propertyID)
}

// ListSaved returns a user's bookmarks
func (s *AccountService) ListSaved(ctx context.Context, userID string) ([]model.SavedProperty, error) {
	return s.store.ListSavedProperties(ctx, userID)
}

// RemoveSaved deletes a bookmark
func (s *AccountService) RemoveSaved(ctx context.Context, userID, propertyID string) error {
	if !validID(propertyID) {
		return ErrNotFound
	}
	ok, err := s.store.RemoveSavedProperty(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *AccountService) requireProperty(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	exists, err := s.store.PropertyExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
