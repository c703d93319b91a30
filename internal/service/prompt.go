package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"estateportal/internal/model"
)

const (
	// maxPromptProperties bounds how many matches are described to the model
	maxPromptProperties = 5
	// maxSuggestedProperties bounds the property cards attached to a reply
	maxSuggestedProperties = 3
)

// BuildSearchPrompt renders the chat assistant prompt for a user query and its matches.
// Only the first five matches are described. The output is deterministic.
func BuildSearchPrompt(query string, matches []model.Property) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a helpful property search assistant. A user is asking: \"%s\"\n\n", query)
	b.WriteString("Available properties that might match their search:\n")

	for _, p := range firstN(matches, maxPromptProperties) {
		fmt.Fprintf(&b, "- %s in %s: %s\n", p.Title, p.Location, FormatNaira(p.Price))
		fmt.Fprintf(&b, "  Type: %s, %s bedrooms, %s bathrooms\n", p.Category, countOrNA(p.Bedrooms), countOrNA(p.Bathrooms))
		if p.AreaSqm != nil {
			fmt.Fprintf(&b, "  Area: %ssqm\n", strconv.FormatFloat(*p.AreaSqm, 'f', -1, 64))
		}
		features := "Standard amenities"
		if len(p.Features) > 0 {
			features = strings.Join(p.Features, ", ")
		}
		fmt.Fprintf(&b, "  Features: %s\n", features)
	}

	b.WriteString("\nRespond naturally and helpfully. If properties match their criteria, mention specific ones. ")
	b.WriteString("If no properties match exactly, suggest alternatives or ask clarifying questions. ")
	b.WriteString("Keep your response conversational and under 150 words.")

	return b.String()
}

type analysisProperty struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Price     int64    `json:"price"`
	Type      string   `json:"type"`
	Location  string   `json:"location"`
	Bedrooms  *int     `json:"bedrooms"`
	Bathrooms *int     `json:"bathrooms"`
	Area      *float64 `json:"area"`
	Features  []string `json:"features"`
}

// BuildAnalysisPrompt renders the market analysis prompt for a set of properties
func BuildAnalysisPrompt(properties []model.Property) (string, error) {
	summary := make([]analysisProperty, 0, len(properties))
	for _, p := range properties {
		features := []string(p.Features)
		if features == nil {
			features = []string{}
		}
		summary = append(summary, analysisProperty{
			ID:        p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Type:      string(p.Category),
			Location:  p.Location,
			Bedrooms:  p.Bedrooms,
			Bathrooms: p.Bathrooms,
			Area:      p.AreaSqm,
			Features:  features,
		})
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode properties: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze these real estate properties and provide insights:\n\n")
	b.WriteString("Properties Data:\n")
	b.Write(data)
	b.WriteString("\n\nPlease provide:\n")
	b.WriteString("1. Market trends based on the property types and locations\n")
	b.WriteString("2. Price analysis and value assessment\n")
	b.WriteString("3. Investment recommendations\n")
	b.WriteString("4. Popular features and amenities\n")
	b.WriteString("5. Location insights\n\n")
	b.WriteString("Keep the response professional and under 400 words.")
	return b.String(), nil
}

// FormatNaira formats a whole-naira amount with thousands separators, e.g. ₦1,500,000
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "₦" + b.String()
}

func countOrNA(n *int) string {
	if n == nil {
		return "N/A"
	}
	return strconv.Itoa(*n)
}

func firstN(properties []model.Property, n int) []model.Property {
	if len(properties) > n {
		return properties[:n]
	}
	return properties
}
