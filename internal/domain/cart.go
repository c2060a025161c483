package domain

import (
	"github.com/shopspring/decimal"
	"time"
)

type Cart struct {
	Items []CartItem
	Total Money
}

// CartItem is a line item. Price is captured when the product is first added.
type CartItem struct {
	ProductID int64
	Title     string
	Price     decimal.Decimal
	Quantity  int

	CreatedAt time.Time
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  quantity,
	}
}
