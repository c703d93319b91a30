package service

import (
	"fmt"
	"time"

	"estateportal/internal/model"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

var fixtureEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// propertyFixture builds a property with a deterministic UUID and creation time
func propertyFixture(n int, title string, category model.Category, location string, price int64) model.Property {
	return model.Property{
		ID:        fmt.Sprintf("00000000-0000-4000-8000-%012d", n),
		Title:     title,
		Price:     price,
		Category:  category,
		Location:  location,
		Status:    model.StatusAvailable,
		Features:  []string{},
		Images:    []string{},
		CreatedAt: fixtureEpoch.Add(time.Duration(n) * time.Hour),
		UpdatedAt: fixtureEpoch.Add(time.Duration(n) * time.Hour),
	}
}
