package domain

import "fmt"

type SortKey string

const (
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortRatingDesc SortKey = "ratingDesc"
	SortNameAsc    SortKey = "nameAsc"
	SortNameDesc   SortKey = "nameDesc"

	DefaultSortKey = SortPriceAsc
)

var sortKeys = []SortKey{SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNameAsc, SortNameDesc}

func SortKeys() []SortKey {
	return append([]SortKey(nil), sortKeys...)
}

func ParseSortKey(raw string) (SortKey, error) {
	for _, k := range sortKeys {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("sort key %q: %w", raw, ErrInvalidSortKey)
}

func (k SortKey) String() string {
	return string(k)
}
