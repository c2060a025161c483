package catalog

import (
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Filter keeps the products matching every criterion, preserving their order.
// The input slice is never modified.
func Filter(products []domain.Product, c domain.FilterCriteria) []domain.Product {
	search := strings.ToLower(c.SearchText)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, c, search) {
			result = append(result, p)
		}
	}
	return result
}

func matches(p domain.Product, c domain.FilterCriteria, search string) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if p.Price.LessThan(c.MinPrice) || p.Price.GreaterThan(c.MaxPrice) {
		return false
	}
	if p.Rating.Rate < c.MinRating {
		return false
	}
	return search == "" || strings.Contains(strings.ToLower(p.Title), search)
}

// Categories lists the distinct categories in first-seen order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var result []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		result = append(result, p.Category)
	}
	return result
}
