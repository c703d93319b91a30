package model

import "testing"

func TestSearchFilterState_Defaults(t *testing.T) {
	s := NewSearchFilterState(9)

	if s.Page() != 1 || s.Category() != CategoryAll || s.Sort() != SortNewest {
		t.Fatalf("unexpected defaults: page=%d category=%s sort=%s", s.Page(), s.Category(), s.Sort())
	}

	q := s.Query()
	if q.Status != StatusAvailable {
		t.Errorf("Status = %s, want available", q.Status)
	}
	if q.Category != nil {
		t.Errorf("Category = %v, want nil for all", *q.Category)
	}
	if q.Offset != 0 || q.Limit != 9 {
		t.Errorf("Offset/Limit = %d/%d, want 0/9", q.Offset, q.Limit)
	}
}

func TestSearchFilterState_ChangesResetPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(s *SearchFilterState)
	}{
		{name: "term", change: func(s *SearchFilterState) { s.SetTerm("lekki") }},
		{name: "category", change: func(s *SearchFilterState) { s.SetCategory("land") }},
		{name: "sort", change: func(s *SearchFilterState) { s.SetSort(SortPriceHigh) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearchFilterState(9)
			s.SetPage(4)
			tt.change(s)
			if s.Page() != 1 {
				t.Errorf("page = %d after changing %s, want 1", s.Page(), tt.name)
			}
		})
	}
}

func TestSearchFilterState_UnchangedValuesKeepPage(t *testing.T) {
	s := NewSearchFilterState(9)
	s.SetTerm("lekki")
	s.SetPage(3)

	s.SetTerm(" lekki ")
	s.SetSort(SortNewest)
	s.SetCategory("all")

	if s.Page() != 3 {
		t.Errorf("page = %d, want 3", s.Page())
	}
}

func TestSearchFilterState_InvalidInputsFallBack(t *testing.T) {
	s := NewSearchFilterState(9)
	s.SetCategory("castle")
	s.SetSort("cheapest")
	s.SetPage(-2)

	if s.Category() != CategoryAll {
		t.Errorf("category = %s, want all", s.Category())
	}
	if s.Sort() != SortNewest {
		t.Errorf("sort = %s, want newest", s.Sort())
	}
	if s.Page() != 1 {
		t.Errorf("page = %d, want 1", s.Page())
	}
}

func TestSearchFilterState_ApplyTotalClamps(t *testing.T) {
	s := NewSearchFilterState(9)
	s.SetPage(5)

	if changed := s.ApplyTotal(20); !changed {
		t.Error("expected page to be clamped")
	}
	if s.Page() != 3 {
		t.Errorf("page = %d, want 3", s.Page())
	}
	if s.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", s.TotalPages())
	}

	if changed := s.ApplyTotal(0); changed {
		t.Error("empty result should not move the page")
	}
	if s.TotalPages() != 0 {
		t.Errorf("TotalPages = %d, want 0", s.TotalPages())
	}
}

func TestSearchFilterState_QueryOffsetAndCategory(t *testing.T) {
	s := NewSearchFilterState(9)
	s.SetCategory("Land")
	s.SetPage(3)

	q := s.Query()
	if q.Category == nil || *q.Category != CategoryLand {
		t.Fatalf("Category = %v, want land", q.Category)
	}
	if q.Offset != 18 {
		t.Errorf("Offset = %d, want 18", q.Offset)
	}
}

func TestSearchFilterState_PageOf(t *testing.T) {
	s := NewSearchFilterState(2)
	s.ApplyTotal(5)

	page := s.PageOf(nil)
	if page.Properties == nil {
		t.Error("Properties should be an empty slice, not nil")
	}
	if page.TotalPages != 3 || !page.HasMore {
		t.Errorf("TotalPages=%d HasMore=%v, want 3/true", page.TotalPages, page.HasMore)
	}

	s.SetPage(3)
	if s.PageOf(nil).HasMore {
		t.Error("last page should not have more")
	}
}
