package service

import (
	"context"
	"errors"
	"testing"

	"estateportal/internal/model"
)

func (m *memoryStore) PropertyExists(ctx context.Context, id string) (bool, error) {
	p, _ := m.GetProperty(ctx, id)
	return p != nil, nil
}

func (m *memoryStore) CreateInquiry(ctx context.Context, req *model.InquiryRequest, userID *string) (*model.Inquiry, error) {
	inquiry := model.Inquiry{
		ID:          "00000000-0000-4000-9000-000000000001",
		PropertyID:  req.PropertyID,
		UserID:      userID,
		Name:        req.Name,
		Email:       req.Email,
		Message:     req.Message,
		InquiryType: req.InquiryType,
		Status:      model.InquiryNew,
	}
	m.inquiries = append(m.inquiries, inquiry)
	return &inquiry, nil
}

func (m *memoryStore) ListInquiriesByUser(ctx context.Context, userID string) ([]model.Inquiry, error) {
	var out []model.Inquiry
	for _, i := range m.inquiries {
		if i.UserID != nil && *i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *memoryStore) SaveProperty(ctx context.Context, userID, propertyID string) error {
	if m.saved == nil {
		m.saved = map[string]bool{}
	}
	m.saved[userID+"/"+propertyID] = true
	return nil
}

func (m *memoryStore) ListSavedProperties(ctx context.Context, userID string) ([]model.SavedProperty, error) {
	var out []model.SavedProperty
	for _, p := range m.properties {
		if m.saved[userID+"/"+p.ID] {
			out = append(out, model.SavedProperty{PropertyID: p.ID, Title: p.Title})
		}
	}
	return out, nil
}

func (m *memoryStore) RemoveSavedProperty(ctx context.Context, userID, propertyID string) (bool, error) {
	key := userID + "/" + propertyID
	if !m.saved[key] {
		return false, nil
	}
	delete(m.saved, key)
	return true, nil
}

func (m *memoryStore) LogEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	m.events = append(m.events, *event)
	return nil
}

func TestAccountService_SubmitInquiry(t *testing.T) {
	props := tenRecordFixture()
	store := &memoryStore{properties: props}
	svc := NewAccountService(store)
	ctx := context.Background()
	user := "user-1"

	inquiry, err := svc.SubmitInquiry(ctx, &model.InquiryRequest{
		PropertyID: strPtr(props[0].ID),
		Name:       " Ada ",
		Email:      "ada@example.com",
		Message:    "Is it still available?",
	}, &user)
	if err != nil {
		t.Fatalf("SubmitInquiry() error = %v", err)
	}
	if inquiry.Name != "Ada" || inquiry.InquiryType != "general" || inquiry.Status != model.InquiryNew {
		t.Errorf("inquiry = %+v", inquiry)
	}

	mine, _ := svc.ListInquiries(ctx, user)
	if len(mine) != 1 {
		t.Errorf("user inquiries = %d, want 1", len(mine))
	}

	_, err = svc.SubmitInquiry(ctx, &model.InquiryRequest{
		PropertyID: strPtr("00000000-0000-4000-8000-000000000999"),
		Name:       "Ada", Email: "ada@example.com", Message: "hi",
	}, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown property error = %v, want ErrNotFound", err)
	}

	_, err = svc.SubmitInquiry(ctx, &model.InquiryRequest{Name: "Ada", Email: "ada@example.com", Message: "  "}, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank message error = %v, want ErrInvalidInput", err)
	}
}

func TestAccountService_SavedProperties(t *testing.T) {
	props := tenRecordFixture()
	svc := NewAccountService(&memoryStore{properties: props})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.SaveProperty(ctx, "user-1", props[2].ID); err != nil {
			t.Fatalf("SaveProperty() error = %v", err)
		}
	}
	saved, _ := svc.ListSaved(ctx, "user-1")
	if len(saved) != 1 {
		t.Errorf("saved = %d, want 1 after saving twice", len(saved))
	}

	if err := svc.SaveProperty(ctx, "user-1", "bogus"); !errors.Is(err, ErrNotFound) {
		t.Errorf("bogus id error = %v", err)
	}

	if err := svc.RemoveSaved(ctx, "user-1", props[2].ID); err != nil {
		t.Fatalf("RemoveSaved() error = %v", err)
	}
	if err := svc.RemoveSaved(ctx, "user-1", props[2].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove error = %v, want ErrNotFound", err)
	}
}

func TestEventService_Track(t *testing.T) {
	store := &memoryStore{}
	svc := NewEventService(store)
	ctx := context.Background()

	for _, eventType := range []string{"page_view", "property_view", "inquiry_submitted", "phone_call_initiated", "time_on_page"} {
		if err := svc.Track(ctx, &model.AnalyticsEvent{EventType: eventType}); err != nil {
			t.Errorf("Track(%s) error = %v", eventType, err)
		}
	}
	if err := svc.Track(ctx, &model.AnalyticsEvent{EventType: "click"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown event error = %v", err)
	}

	if err := svc.Track(ctx, &model.AnalyticsEvent{EventType: "property_view", PropertyID: strPtr("nope")}); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if last := store.events[len(store.events)-1]; last.PropertyID != nil {
		t.Errorf("invalid property id should be dropped, got %v", *last.PropertyID)
	}
	if len(store.events) != 6 {
		t.Errorf("events = %d, want 6", len(store.events))
	}
}
