package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"estateportal/internal/model"
)

// FilterProperties returns the properties relevant to a free-text query, in input order.
//
// A property matches when any of these hold:
//   - the query is a substring of its searchable text
//   - the query mentions "bedroom" and the property has a bedroom count
//   - the query mentions "bathroom" and the property has a bathroom count
//   - the query contains the property's category starting at a word boundary
//   - the query contains the property's location starting at a word boundary
//
// The bedroom and bathroom rules ignore the requested count.
func FilterProperties(properties []model.Property, query string) []model.Property {
	q := strings.ToLower(query)
	wantsBedrooms := strings.Contains(q, "bedroom")
	wantsBathrooms := strings.Contains(q, "bathroom")

	matches := make([]model.Property, 0)
	for _, p := range properties {
		switch {
		case strings.Contains(searchableText(p), q):
		case wantsBedrooms && p.Bedrooms != nil:
		case wantsBathrooms && p.Bathrooms != nil:
		case containsWord(q, strings.ToLower(string(p.Category))):
		case containsWord(q, strings.ToLower(strings.TrimSpace(p.Location))):
		default:
			continue
		}
		matches = append(matches, p)
	}
	return matches
}

func searchableText(p model.Property) string {
	parts := []string{p.Title, p.Description, p.Location, string(p.Category)}
	if p.Address != nil {
		parts = append(parts, *p.Address)
	}
	parts = append(parts, p.Features...)
	return strings.ToLower(strings.Join(parts, " "))
}

// containsWord reports whether needle occurs in s at the start of a word, so
// "land" is not found in "island" but "apartment" is found in "apartments".
// An empty needle never matches.
func containsWord(s, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; start <= len(s)-len(needle); {
		i := strings.Index(s[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		before, _ := utf8.DecodeLastRuneInString(s[:i])
		if i == 0 || !isWordRune(before) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
