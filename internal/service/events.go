package service

import (
	"context"

	"estateportal/internal/model"
)

// EventStore persists analytics events
type EventStore interface {
	LogEvent(ctx context.Context, event *model.AnalyticsEvent) error
}

var validEventTypes = map[string]bool{
	"page_view":            true,
	"property_view":        true,
	"inquiry_submitted":    true,
	"phone_call_initiated": true,
	"time_on_page":         true,
}

// EventService records frontend analytics events
type EventService struct {
	store EventStore
}

// NewEventService creates an event service
func NewEventService(store EventStore) *EventService {
	return &EventService{store: store}
}

// Track validates and stores an event
func (s *EventService) Track(ctx context.Context, event *model.AnalyticsEvent) error {
	if !validEventTypes[event.EventType] {
		return invalidInput("invalid event_type. Must be one of: page_view, property_view, inquiry_submitted, phone_call_initiated, time_on_page")
	}
	if event.PropertyID != nil && !validID(*event.PropertyID) {
		event.PropertyID = nil
	}
	return s.store.LogEvent(ctx, event)
}
