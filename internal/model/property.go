package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Category is the property type of a listing
type Category string

const (
	CategoryApartment  Category = "apartment"
	CategoryHouse      Category = "house"
	CategoryDuplex     Category = "duplex"
	CategoryPenthouse  Category = "penthouse"
	CategoryLand       Category = "land"
	CategoryCommercial Category = "commercial"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryApartment,
	CategoryHouse,
	CategoryDuplex,
	CategoryPenthouse,
	CategoryLand,
	CategoryCommercial,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the availability status of a listing. Any status may follow any other.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold, StatusRented:
		return true
	}
	return false
}

// Property represents one listing
type Property struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Price       int64          `json:"price" db:"price"`
	Category    Category       `json:"property_type" db:"property_type"`
	Bedrooms    *int           `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms   *int           `json:"bathrooms,omitempty" db:"bathrooms"`
	AreaSqm     *float64       `json:"area_sqm,omitempty" db:"area_sqm"`
	Location    string         `json:"location" db:"location"`
	Address     *string        `json:"address,omitempty" db:"address"`
	Features    pq.StringArray `json:"features" db:"features"`
	Status      Status         `json:"status" db:"status"`
	Images      pq.StringArray `json:"images" db:"images"`
	CreatedBy   *string        `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// CoverImage returns the primary image URL, or "" when the listing has none
func (p *Property) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// PropertyInput is the admin payload for creating or replacing a listing
type PropertyInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Category    Category `json:"property_type" binding:"required"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	AreaSqm     *float64 `json:"area_sqm,omitempty"`
	Location    string   `json:"location" binding:"required"`
	Address     *string  `json:"address,omitempty"`
	Features    []string `json:"features"`
	Status      Status   `json:"status"`
	Images      []string `json:"images"`
}

// Normalize trims feature tags, drops empty ones and defaults the status
func (in *PropertyInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	in.Features = features
	if in.Status == "" {
		in.Status = StatusAvailable
	}
	if in.Images == nil {
		in.Images = []string{}
	}
}

// Validate checks the listing invariants
func (in *PropertyInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("title is required")
	}
	if in.Location == "" {
		return fmt.Errorf("location is required")
	}
	if in.Price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	if !in.Category.Valid() {
		return fmt.Errorf("invalid property_type: %s", in.Category)
	}
	if !in.Status.Valid() {
		return fmt.Errorf("invalid status: %s", in.Status)
	}
	if in.Bedrooms != nil && *in.Bedrooms < 0 {
		return fmt.Errorf("bedrooms must be non-negative")
	}
	if in.Bathrooms != nil && *in.Bathrooms < 0 {
		return fmt.Errorf("bathrooms must be non-negative")
	}
	if in.AreaSqm != nil && *in.AreaSqm <= 0 {
		return fmt.Errorf("area_sqm must be positive")
	}
	return nil
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
