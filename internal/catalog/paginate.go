package catalog

import "github.com/nikolayk812/storefront/internal/domain"

const DefaultPageSize = 9

type Page struct {
	Items      []domain.Product
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// TotalPages is ceil(n/size) with a minimum of one page.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (n + size - 1) / size
	return max(pages, 1)
}

// Paginate slices the 1-based page out of products. A page outside
// [1, TotalPages] yields no items; clamping is the caller's job.
func Paginate(products []domain.Product, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	result := Page{
		Number:     page,
		Size:       size,
		TotalItems: len(products),
		TotalPages: TotalPages(len(products), size),
		Items:      []domain.Product{},
	}

	if page < 1 {
		return result
	}

	start := (page - 1) * size
	if start >= len(products) {
		return result
	}
	end := min(start+size, len(products))

	result.Items = append(result.Items, products[start:end]...)
	return result
}

func ClampPage(page, totalPages int) int {
	return min(max(page, 1), max(totalPages, 1))
}
