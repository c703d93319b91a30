package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"estateportal/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AdminStore is the write side of the listing store plus inquiry management
type AdminStore interface {
	ListAllProperties(ctx context.Context) ([]model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	CreateProperty(ctx context.Context, p *model.Property) error
	UpdateProperty(ctx context.Context, id string, in *model.PropertyInput) (*model.Property, error)
	UpdatePropertyStatus(ctx context.Context, id string, status model.Status) (bool, error)
	DeleteProperty(ctx context.Context, id string) (bool, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
	ListInquiries(ctx context.Context) ([]model.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status model.InquiryStatus) (bool, error)
}

// Embedder creates text embeddings
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	IsEnabled() bool
}

// AdminService backs the admin dashboard
type AdminService struct {
	store    AdminStore
	cache    ListingCache
	embedder Embedder
}

// NewAdminService creates an admin service. cache and embedder may be nil.
func NewAdminService(store AdminStore, cache ListingCache, embedder Embedder) *AdminService {
	return &AdminService{store: store, cache: cache, embedder: embedder}
}

// ListProperties returns every property, newest first
func (s *AdminService) ListProperties(ctx context.Context) ([]model.Property, error) {
	return s.store.ListAllProperties(ctx)
}

// CreateProperty validates the input and stores a new property under a fresh ID
func (s *AdminService) CreateProperty(ctx context.Context, in *model.PropertyInput, createdBy string) (*model.Property, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalidInput("%v", err)
	}

	now := time.Now().UTC()
	property := &model.Property{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		AreaSqm:     in.AreaSqm,
		Location:    in.Location,
		Address:     in.Address,
		Features:    pq.StringArray(in.Features),
		Status:      in.Status,
		Images:      pq.StringArray(in.Images),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if createdBy != "" {
		property.CreatedBy = &createdBy
	}

	if err := s.store.CreateProperty(ctx, property); err != nil {
		return nil, err
	}
	log.Printf("🏠 Property created: %s (%s)", property.ID, property.Title)

	s.invalidate(ctx)
	s.embedBestEffort(ctx, property)
	return property, nil
}

// UpdateProperty replaces the editable fields of a property
func (s *AdminService) UpdateProperty(ctx context.Context, id string, in *model.PropertyInput) (*model.Property, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalidInput("%v", err)
	}

	property, err := s.store.UpdateProperty(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrNotFound
	}

	s.invalidate(ctx)
	s.embedBestEffort(ctx, property)
	return property, nil
}

// UpdatePropertyStatus moves a property to any status
func (s *AdminService) UpdatePropertyStatus(ctx context.Context, id, status string) error {
	st := model.Status(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return invalidInput("invalid status: %s", status)
	}
	if !validID(id) {
		return ErrNotFound
	}

	ok, err := s.store.UpdatePropertyStatus(ctx, id, st)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// DeleteProperty removes a property
func (s *AdminService) DeleteProperty(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	ok, err := s.store.DeleteProperty(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	log.Printf("🗑️  Property deleted: %s", id)
	s.invalidate(ctx)
	return nil
}

// ReembedProperty recomputes the description embedding used for similar listings
func (s *AdminService) ReembedProperty(ctx context.Context, id string) error {
	if s.embedder == nil || !s.embedder.IsEnabled() {
		return configMissingError()
	}
	if !validID(id) {
		return ErrNotFound
	}

	property, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return err
	}
	if property == nil {
		return ErrNotFound
	}
	return s.embed(ctx, property)
}

// ListInquiries returns every inquiry, newest first
func (s *AdminService) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	return s.store.ListInquiries(ctx)
}

// UpdateInquiryStatus moves an inquiry to a new status
func (s *AdminService) UpdateInquiryStatus(ctx context.Context, id, status string) error {
	st := model.InquiryStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return invalidInput("invalid status: %s", status)
	}
	if !validID(id) {
		return ErrNotFound
	}

	ok, err := s.store.UpdateInquiryStatus(ctx, id, st)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *AdminService) embed(ctx context.Context, property *model.Property) error {
	embeddings, err := s.embedder.CreateEmbeddings(ctx, []string{EmbeddingText(property)})
	if err != nil {
		return classifyUpstream(err)
	}
	if len(embeddings) != 1 || len(embeddings[0]) == 0 {
		return &GatewayError{Kind: KindUpstream, Message: "Failed to generate embedding", Err: fmt.Errorf("got %d embeddings", len(embeddings))}
	}
	return s.store.UpdateEmbedding(ctx, property.ID, embeddings[0])
}

// embedBestEffort refreshes the embedding after a write; failures are only logged
func (s *AdminService) embedBestEffort(ctx context.Context, property *model.Property) {
	if s.embedder == nil || !s.embedder.IsEnabled() {
		return
	}
	if err := s.embed(ctx, property); err != nil {
		log.Printf("Warning: failed to embed property %s: %v", property.ID, err)
	}
}

func (s *AdminService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Warning: failed to invalidate listing cache: %v", err)
	}
}

// EmbeddingText is the text embedded for similarity search
func EmbeddingText(p *model.Property) string {
	parts := []string{p.Title, string(p.Category), p.Location, p.Description}
	if len(p.Features) > 0 {
		parts = append(parts, strings.Join(p.Features, ", "))
	}
	return strings.Join(parts, "\n")
}
