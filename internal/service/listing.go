package service

import (
	"context"
	"fmt"
	"log"

	"estateportal/internal/model"

	"github.com/google/uuid"
)

// ListingStore is the read side of the listing store
type ListingStore interface {
	QueryListings(ctx context.Context, q model.ListingQuery) ([]model.Property, int, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	SimilarProperties(ctx context.Context, id string, limit int) ([]model.Property, error)
}

// ListingCache caches listing pages. Implementations must tolerate concurrent use.
type ListingCache interface {
	Get(ctx context.Context, q model.ListingQuery) ([]model.Property, int, bool, error)
	Set(ctx context.Context, q model.ListingQuery, properties []model.Property, total int) error
	Invalidate(ctx context.Context) error
}

// ListingService serves the public listing page and property details
type ListingService struct {
	store        ListingStore
	cache        ListingCache
	pageSize     int
	similarLimit int
}

// NewListingService creates a listing service. cache may be nil.
func NewListingService(store ListingStore, cache ListingCache, pageSize, similarLimit int) *ListingService {
	return &ListingService{
		store:        store,
		cache:        cache,
		pageSize:     pageSize,
		similarLimit: similarLimit,
	}
}

// ListingParams are the raw filters of a listing page request
type ListingParams struct {
	Term     string
	Category string
	Sort     model.SortKey
	Page     int
}

// Search returns one page of available listings. A page past the end is
// clamped to the last page.
func (s *ListingService) Search(ctx context.Context, params ListingParams) (*model.ListingPage, error) {
	state := model.NewSearchFilterState(s.pageSize)
	state.SetTerm(params.Term)
	state.SetCategory(params.Category)
	state.SetSort(params.Sort)
	state.SetPage(params.Page)

	properties, total, err := s.fetch(ctx, state.Query())
	if err != nil {
		return nil, err
	}

	if state.ApplyTotal(total) {
		properties, total, err = s.fetch(ctx, state.Query())
		if err != nil {
			return nil, err
		}
		state.ApplyTotal(total)
	}

	return state.PageOf(properties), nil
}

func (s *ListingService) fetch(ctx context.Context, q model.ListingQuery) ([]model.Property, int, error) {
	if s.cache != nil {
		properties, total, ok, err := s.cache.Get(ctx, q)
		if err != nil {
			log.Printf("Warning: listing cache read failed: %v", err)
		} else if ok {
			return properties, total, nil
		}
	}

	properties, total, err := s.store.QueryListings(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query listings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, q, properties, total); err != nil {
			log.Printf("Warning: listing cache write failed: %v", err)
		}
	}
	return properties, total, nil
}

// Get returns a single property
func (s *ListingService) Get(ctx context.Context, id string) (*model.Property, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	property, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrNotFound
	}
	return property, nil
}

// Similar returns available properties closest to the given one by description embedding
func (s *ListingService) Similar(ctx context.Context, id string) ([]model.Property, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	properties, err := s.store.SimilarProperties(ctx, id, s.similarLimit)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []model.Property{}
	}
	return properties, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
