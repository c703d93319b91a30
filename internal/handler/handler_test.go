package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estateportal/internal/model"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubListings serves a fixed set of available properties
type stubListings struct {
	properties []model.Property
}

func (s *stubListings) QueryListings(ctx context.Context, q model.ListingQuery) ([]model.Property, int, error) {
	var matched []model.Property
	for _, p := range s.properties {
		if q.Category != nil && p.Category != *q.Category {
			continue
		}
		if q.Term != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Location), strings.ToLower(q.Term)) {
			continue
		}
		matched = append(matched, p)
	}
	total := len(matched)
	start := q.Offset
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *stubListings) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	for _, p := range s.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *stubListings) SimilarProperties(ctx context.Context, id string, limit int) ([]model.Property, error) {
	return nil, nil
}

func testProperties() []model.Property {
	beds := 3
	apartment := model.Property{
		ID:        "00000000-0000-4000-8000-000000000001",
		Title:     "Luxury 3 Bedroom Apartment",
		Price:     85000000,
		Category:  model.CategoryApartment,
		Bedrooms:  &beds,
		Location:  "Victoria Island",
		Status:    model.StatusAvailable,
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	land := model.Property{
		ID:        "00000000-0000-4000-8000-000000000002",
		Title:     "Prime Plot",
		Price:     12000000,
		Category:  model.CategoryLand,
		Location:  "Epe",
		Status:    model.StatusAvailable,
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	return []model.Property{apartment, land}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
