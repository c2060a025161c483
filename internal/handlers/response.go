package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/storefront"
	"github.com/shopspring/decimal"
)

const emptyCartMessage = "Your cart is empty."

type catalogResponse struct {
	Status     string           `json:"status"`
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	Sort       string           `json:"sort"`
	Filter     filterResponse   `json:"filter"`
	Categories []string         `json:"categories"`
}

type filterResponse struct {
	Category  string          `json:"category"`
	MinPrice  decimal.Decimal `json:"min_price"`
	MaxPrice  decimal.Decimal `json:"max_price"`
	MinRating float64         `json:"min_rating"`
	Search    string          `json:"search"`
}

type cartResponse struct {
	Items    []cartItemResponse `json:"items"`
	Count    int                `json:"count"`
	Total    decimal.Decimal    `json:"total"`
	Currency string             `json:"currency"`
}

type cartItemResponse struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type noticeResponse struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

type checkoutResponse struct {
	State    string            `json:"state"`
	Snapshot *snapshotResponse `json:"snapshot,omitempty"`
	Cart     cartResponse      `json:"cart"`
	Message  string            `json:"message,omitempty"`
}

type snapshotResponse struct {
	ID         uuid.UUID              `json:"id"`
	Lines      []snapshotLineResponse `json:"lines"`
	Total      decimal.Decimal        `json:"total"`
	Currency   string                 `json:"currency"`
	CapturedAt time.Time              `json:"captured_at"`
}

type snapshotLineResponse struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func newCatalogResponse(page storefront.CatalogPage) catalogResponse {
	return catalogResponse{
		Status:     page.Status.String(),
		Items:      page.Items,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Sort:       page.SortKey.String(),
		Filter: filterResponse{
			Category:  page.Criteria.Category,
			MinPrice:  page.Criteria.MinPrice,
			MaxPrice:  page.Criteria.MaxPrice,
			MinRating: page.Criteria.MinRating,
			Search:    page.Criteria.SearchText,
		},
		Categories: page.Categories,
	}
}

func newCartResponse(cart domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemResponse{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}

	return cartResponse{
		Items:    items,
		Count:    len(items),
		Total:    cart.Total.Amount,
		Currency: cart.Total.Currency.String(),
	}
}

func newSnapshotResponse(s domain.Snapshot) snapshotResponse {
	lines := make([]snapshotLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, snapshotLineResponse{
			ProductID: l.ProductID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.Amount,
			Subtotal:  l.Subtotal.Amount,
		})
	}

	return snapshotResponse{
		ID:         s.ID,
		Lines:      lines,
		Total:      s.Total.Amount,
		Currency:   s.Total.Currency.String(),
		CapturedAt: s.CapturedAt,
	}
}
