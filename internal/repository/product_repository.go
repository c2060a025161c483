package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const sourceName = "postgres"

type productRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *productRepository) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, domain.NewFetchError(sourceName, fmt.Errorf("q.ListProducts: %w", err))
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, mapListProductsRowToDomain(row))
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, fmt.Errorf("product id is not positive")
	}

	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapGetProductRowToDomain(row), nil
}

// ReplaceProducts swaps the whole catalog in one transaction and returns the number
// of products written.
func (r *productRepository) ReplaceProducts(ctx context.Context, products []domain.Product) (int64, error) {
	for _, p := range products {
		if err := validateProduct(p); err != nil {
			return 0, fmt.Errorf("validateProduct: %w", err)
		}
	}

	return withTx(ctx, r.pool, r.q, replaceTxOptions, func(q *db.Queries) (int64, error) {
		if _, err := q.DeleteAllProducts(ctx); err != nil {
			return 0, fmt.Errorf("q.DeleteAllProducts: %w", err)
		}

		var written int64
		for _, p := range products {
			if err := q.InsertProduct(ctx, mapDomainToInsertProductParams(p)); err != nil {
				return 0, fmt.Errorf("q.InsertProduct[%d]: %w", p.ID, err)
			}
			written++
		}

		return written, nil
	})
}

func validateProduct(p domain.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product id is not positive")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product[%d] price is negative", p.ID)
	}
	if p.Rating.Count < 0 || p.Rating.Count > math.MaxInt32 {
		return fmt.Errorf("product[%d] rating count is out of range", p.ID)
	}
	return nil
}

func mapListProductsRowToDomain(row db.ListProductsRow) domain.Product {
	return domain.Product{
		ID:       row.ID,
		Title:    row.Title,
		Price:    row.Price,
		Category: row.Category,
		Image:    row.Image,
		Rating: domain.Rating{
			Rate:  row.RatingRate,
			Count: int(row.RatingCount),
		},
	}
}

func mapGetProductRowToDomain(row db.GetProductRow) domain.Product {
	return mapListProductsRowToDomain(db.ListProductsRow(row))
}

func mapDomainToInsertProductParams(p domain.Product) db.InsertProductParams {
	return db.InsertProductParams{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		RatingRate:  p.Rating.Rate,
		RatingCount: int32(p.Rating.Count),
	}
}
