package catalog

import (
	"cmp"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a stably sorted copy of products. Titles are compared with the
// collation rules of tag.
func Sort(products []domain.Product, key domain.SortKey, tag language.Tag) []domain.Product {
	sorted := slices.Clone(products)

	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case domain.SortRatingDesc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
		})
	case domain.SortNameAsc, domain.SortNameDesc:
		// a Collator keeps internal buffers, one per call
		col := collate.New(tag)
		desc := key == domain.SortNameDesc
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			if desc {
				return col.CompareString(b.Title, a.Title)
			}
			return col.CompareString(a.Title, b.Title)
		})
	}

	return sorted
}
