package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	AllCategories = "all"
	MaxRating     = 5.0
)

var DefaultMaxPrice = decimal.NewFromInt(1000)

// FilterCriteria narrows the catalog. It is changed only through its setters,
// each of which validates its own field and leaves the criteria untouched on error.
type FilterCriteria struct {
	Category   string
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	MinRating  float64
	SearchText string
}

func DefaultFilterCriteria(maxPrice decimal.Decimal) FilterCriteria {
	return FilterCriteria{
		MinPrice: decimal.Zero,
		MaxPrice: maxPrice,
	}
}

func (c *FilterCriteria) SetCategory(category string) {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, AllCategories) {
		category = ""
	}
	c.Category = category
}

func (c *FilterCriteria) SetMinPrice(raw string) error {
	v, err := parsePriceBound(raw)
	if err != nil {
		return fmt.Errorf("minPrice: %w", err)
	}
	c.MinPrice = v
	return nil
}

func (c *FilterCriteria) SetMaxPrice(raw string) error {
	v, err := parsePriceBound(raw)
	if err != nil {
		return fmt.Errorf("maxPrice: %w", err)
	}
	c.MaxPrice = v
	return nil
}

func (c *FilterCriteria) SetMinRating(raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return fmt.Errorf("minRating %q is not a number: %w", raw, ErrInvalidFilter)
	}
	if v < 0 || v > MaxRating {
		return fmt.Errorf("minRating %v is outside [0, %v]: %w", v, MaxRating, ErrInvalidFilter)
	}
	c.MinRating = v
	return nil
}

func (c *FilterCriteria) SetSearchText(text string) {
	c.SearchText = text
}

func (c FilterCriteria) Equal(other FilterCriteria) bool {
	return c.Category == other.Category &&
		c.MinPrice.Equal(other.MinPrice) &&
		c.MaxPrice.Equal(other.MaxPrice) &&
		c.MinRating == other.MinRating &&
		c.SearchText == other.SearchText
}

func parsePriceBound(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a number: %w", raw, ErrInvalidFilter)
	}
	if v.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s is negative: %w", v, ErrInvalidFilter)
	}
	return v, nil
}
