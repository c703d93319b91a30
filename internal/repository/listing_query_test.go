package repository

import (
	"strings"
	"testing"

	"estateportal/internal/model"
)

func TestBuildListingQuery_NoFilters(t *testing.T) {
	stmt := buildListingQuery(model.ListingQuery{Sort: model.SortNewest, Limit: 9})

	if stmt.count != "SELECT COUNT(*) FROM properties WHERE 1=1" {
		t.Errorf("count = %q", stmt.count)
	}
	if len(stmt.countArgs) != 0 {
		t.Errorf("countArgs = %v, want none", stmt.countArgs)
	}
	if !strings.Contains(stmt.page, "ORDER BY created_at DESC, id") {
		t.Errorf("page missing newest ordering: %s", stmt.page)
	}
	if !strings.Contains(stmt.page, "LIMIT $1 OFFSET $2") {
		t.Errorf("page placeholders wrong: %s", stmt.page)
	}
	if len(stmt.pageArgs) != 2 || stmt.pageArgs[0] != 9 || stmt.pageArgs[1] != 0 {
		t.Errorf("pageArgs = %v, want [9 0]", stmt.pageArgs)
	}
}

func TestBuildListingQuery_AllFilters(t *testing.T) {
	land := model.CategoryLand
	stmt := buildListingQuery(model.ListingQuery{
		Status:   model.StatusAvailable,
		Term:     " Lekki ",
		Category: &land,
		Sort:     model.SortPriceHigh,
		Offset:   18,
		Limit:    9,
	})

	wantWhere := "1=1 AND status = $1 AND (title ILIKE $2 OR location ILIKE $2 OR description ILIKE $2) AND property_type = $3"
	if !strings.HasSuffix(stmt.count, wantWhere) {
		t.Errorf("count = %q, want suffix %q", stmt.count, wantWhere)
	}
	if !strings.Contains(stmt.page, "ORDER BY price DESC, created_at DESC, id") {
		t.Errorf("page missing price_high ordering: %s", stmt.page)
	}
	if !strings.Contains(stmt.page, "LIMIT $4 OFFSET $5") {
		t.Errorf("page placeholders wrong: %s", stmt.page)
	}

	wantArgs := []interface{}{"available", "%Lekki%", "land"}
	if len(stmt.countArgs) != len(wantArgs) {
		t.Fatalf("countArgs = %v, want %v", stmt.countArgs, wantArgs)
	}
	for i, want := range wantArgs {
		if stmt.countArgs[i] != want {
			t.Errorf("countArgs[%d] = %v, want %v", i, stmt.countArgs[i], want)
		}
	}
	if len(stmt.pageArgs) != 5 || stmt.pageArgs[3] != 9 || stmt.pageArgs[4] != 18 {
		t.Errorf("pageArgs = %v", stmt.pageArgs)
	}
}

func TestBuildListingQuery_SortKeys(t *testing.T) {
	tests := []struct {
		sort model.SortKey
		want string
	}{
		{model.SortNewest, "ORDER BY created_at DESC, id"},
		{model.SortOldest, "ORDER BY created_at ASC, id"},
		{model.SortPriceLow, "ORDER BY price ASC, created_at DESC, id"},
		{model.SortPriceHigh, "ORDER BY price DESC, created_at DESC, id"},
		{model.SortKey("bogus"), "ORDER BY created_at DESC, id"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			stmt := buildListingQuery(model.ListingQuery{Sort: tt.sort, Limit: 9})
			if !strings.Contains(stmt.page, tt.want) {
				t.Errorf("page = %s, want %s", stmt.page, tt.want)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Errorf("escapeLike() = %q", got)
	}
}
