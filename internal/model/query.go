package model

import "strings"

// SortKey is the ordering applied to a listing page
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
)

// Valid reports whether k is a known sort key
func (k SortKey) Valid() bool {
	switch k {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// CategoryAll disables the category filter
const CategoryAll = "all"

// ListingQuery is the request sent to the listing store
type ListingQuery struct {
	Status   Status    // equality filter
	Term     string    // case-insensitive substring over title, location, description
	Category *Category // nil means all categories
	Sort     SortKey
	Offset   int
	Limit    int
}

// ListingPage represents one page of the public listing
type ListingPage struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	HasMore    bool       `json:"has_more"`
	Term       string     `json:"q,omitempty"`
	Category   string     `json:"category"`
	Sort       SortKey    `json:"sort"`
}

// SearchFilterState is the current filter, sort and page selection of the listing page.
// Changing the term, category or sort resets the page to 1.
type SearchFilterState struct {
	term     string
	category string
	sort     SortKey
	page     int
	pageSize int
	total    int
}

// NewSearchFilterState returns the defaults used when the listing page mounts
func NewSearchFilterState(pageSize int) *SearchFilterState {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &SearchFilterState{
		category: CategoryAll,
		sort:     SortNewest,
		page:     1,
		pageSize: pageSize,
	}
}

func (s *SearchFilterState) Term() string     { return s.term }
func (s *SearchFilterState) Category() string { return s.category }
func (s *SearchFilterState) Sort() SortKey    { return s.sort }
func (s *SearchFilterState) Page() int        { return s.page }
func (s *SearchFilterState) PageSize() int    { return s.pageSize }
func (s *SearchFilterState) Total() int       { return s.total }

// SetTerm changes the free-text term
func (s *SearchFilterState) SetTerm(term string) {
	term = strings.TrimSpace(term)
	if term == s.term {
		return
	}
	s.term = term
	s.page = 1
}

// SetCategory changes the category filter. Unknown values fall back to "all".
func (s *SearchFilterState) SetCategory(category string) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || !Category(category).Valid() {
		category = CategoryAll
	}
	if category == s.category {
		return
	}
	s.category = category
	s.page = 1
}

// SetSort changes the sort key. Unknown values fall back to newest.
func (s *SearchFilterState) SetSort(sort SortKey) {
	if !sort.Valid() {
		sort = SortNewest
	}
	if sort == s.sort {
		return
	}
	s.sort = sort
	s.page = 1
}

// SetPage moves to page n, never below 1
func (s *SearchFilterState) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.page = n
}

// TotalPages derives the page count from the last known total
func (s *SearchFilterState) TotalPages() int {
	if s.total == 0 {
		return 0
	}
	return (s.total + s.pageSize - 1) / s.pageSize
}

// ApplyTotal records the total from the last response and clamps the page.
// It reports whether the page changed.
func (s *SearchFilterState) ApplyTotal(total int) bool {
	if total < 0 {
		total = 0
	}
	s.total = total
	last := s.TotalPages()
	if last > 0 && s.page > last {
		s.page = last
		return true
	}
	return false
}

// Query builds the listing store request for the current state.
// Only available listings are shown publicly.
func (s *SearchFilterState) Query() ListingQuery {
	q := ListingQuery{
		Status: StatusAvailable,
		Term:   s.term,
		Sort:   s.sort,
		Offset: (s.page - 1) * s.pageSize,
		Limit:  s.pageSize,
	}
	if s.category != CategoryAll {
		c := Category(s.category)
		q.Category = &c
	}
	return q
}

// PageOf wraps properties from the store into a response for the current state
func (s *SearchFilterState) PageOf(properties []Property) *ListingPage {
	if properties == nil {
		properties = []Property{}
	}
	totalPages := s.TotalPages()
	return &ListingPage{
		Properties: properties,
		Total:      s.total,
		Page:       s.page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		HasMore:    s.page < totalPages,
		Term:       s.term,
		Category:   s.category,
		Sort:       s.sort,
	}
}
