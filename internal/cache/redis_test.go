package cache

import (
	"strings"
	"testing"

	"estateportal/internal/model"
)

func TestQueryKey(t *testing.T) {
	land := model.CategoryLand
	base := model.ListingQuery{Status: model.StatusAvailable, Term: "Lekki", Sort: model.SortNewest, Limit: 9}

	withCategory := base
	withCategory.Category = &land
	nextPage := base
	nextPage.Offset = 9
	sameTermOtherCase := base
	sameTermOtherCase.Term = " lekki "

	key := QueryKey(0, base)
	if !strings.HasPrefix(key, "listings:v0:") {
		t.Errorf("key = %q, want listings:v0: prefix", key)
	}
	if key != QueryKey(0, base) {
		t.Error("key should be deterministic")
	}
	if key != QueryKey(0, sameTermOtherCase) {
		t.Error("term case and padding should not change the key")
	}

	tests := []struct {
		name  string
		other string
	}{
		{name: "category", other: QueryKey(0, withCategory)},
		{name: "offset", other: QueryKey(0, nextPage)},
		{name: "generation", other: QueryKey(1, base)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.other == key {
				t.Errorf("changing %s should change the key", tt.name)
			}
		})
	}
}
