package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// ProductSource provides the read-only catalog. Failures are *domain.FetchError.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

type ProductRepository interface {
	ProductSource
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ReplaceProducts(ctx context.Context, products []domain.Product) (int64, error)
}
