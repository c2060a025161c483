package cart_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/currency"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *cart.Store {
	t.Helper()
	return cart.NewStore(currency.USD, clock.NewMockClock(now), zaptest.NewLogger(t))
}

func TestAddItem(t *testing.T) {
	first := randomCartItem(1)
	second := randomCartItem(2)

	tests := []struct {
		name  string
		setup []domain.CartItem
		item  domain.CartItem
		want  []domain.CartItem
	}{
		{
			name: "add to empty cart: ok",
			item: first,
			want: []domain.CartItem{first},
		},
		{
			name:  "add distinct product appends in insertion order: ok",
			setup: []domain.CartItem{first},
			item:  second,
			want:  []domain.CartItem{first, second},
		},
		{
			name:  "add same product merges quantity: ok",
			setup: []domain.CartItem{first},
			item:  withQuantity(first, 2),
			want:  []domain.CartItem{withQuantity(first, first.Quantity+2)},
		},
		{
			name:  "merge keeps original title and price: ok",
			setup: []domain.CartItem{first},
			item: domain.CartItem{
				ProductID: first.ProductID,
				Title:     "renamed",
				Price:     first.Price.Add(decimal.NewFromInt(10)),
				Quantity:  1,
			},
			want: []domain.CartItem{withQuantity(first, first.Quantity+1)},
		},
		{
			name:  "zero quantity on existing line: no-op",
			setup: []domain.CartItem{first},
			item:  withQuantity(first, 0),
			want:  []domain.CartItem{first},
		},
		{
			name: "negative quantity on absent line: no-op",
			item: withQuantity(first, -3),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			for _, item := range tt.setup {
				s.AddItem(item)
			}

			s.AddItem(tt.item)

			assertItems(t, tt.want, s.Items())
		})
	}
}

func TestAddItem_MergeIsAssociative(t *testing.T) {
	s := newStore(t)
	item := domain.CartItem{ProductID: 1, Title: "Backpack", Price: decimal.NewFromInt(50), Quantity: 1}

	s.AddItem(item)
	s.AddItem(withQuantity(item, 2))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, decimal.NewFromInt(150).Equal(s.Total().Amount), s.Total().String())
}

func TestUpdateQuantity(t *testing.T) {
	item := randomCartItem(7)

	tests := []struct {
		name        string
		productID   int64
		quantity    int
		wantUpdated bool
		wantErr     error
		wantQty     int
	}{
		{
			name:        "update existing line: ok",
			productID:   item.ProductID,
			quantity:    5,
			wantUpdated: true,
			wantQty:     5,
		},
		{
			name:        "update to zero keeps the line: ok",
			productID:   item.ProductID,
			quantity:    0,
			wantUpdated: true,
			wantQty:     0,
		},
		{
			name:      "unknown product: no-op",
			productID: 99,
			quantity:  5,
			wantQty:   item.Quantity,
		},
		{
			name:      "negative quantity: error, prior quantity retained",
			productID: item.ProductID,
			quantity:  -1,
			wantErr:   domain.ErrInvalidQuantity,
			wantQty:   item.Quantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			s.AddItem(item)

			updated, err := s.UpdateQuantity(tt.productID, tt.quantity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantUpdated, updated)

			items := s.Items()
			require.Len(t, items, 1)
			assert.Equal(t, tt.wantQty, items[0].Quantity)
		})
	}
}

func TestRemoveItem(t *testing.T) {
	s := newStore(t)
	first, second := randomCartItem(1), randomCartItem(2)
	s.AddItem(first)
	s.AddItem(second)

	assert.True(t, s.RemoveItem(first.ProductID))
	assert.False(t, s.RemoveItem(first.ProductID), "second removal is a no-op")
	assert.False(t, s.RemoveItem(42))

	assertItems(t, []domain.CartItem{second}, s.Items())
}

func TestClear(t *testing.T) {
	s := newStore(t)
	s.AddItem(randomCartItem(1))
	s.AddItem(randomCartItem(2))

	s.Clear()

	assert.Zero(t, s.Count())
	assert.True(t, s.Total().Amount.IsZero())
}

func TestTotal(t *testing.T) {
	t.Run("empty cart: zero", func(t *testing.T) {
		s := newStore(t)

		total := s.Total()
		assert.True(t, total.Amount.IsZero())
		assert.Equal(t, currency.USD, total.Currency)
	})

	t.Run("sum of price times quantity: exact to the cent", func(t *testing.T) {
		s := newStore(t)
		s.AddItem(domain.CartItem{ProductID: 1, Price: decimal.RequireFromString("0.10"), Quantity: 3})
		s.AddItem(domain.CartItem{ProductID: 2, Price: decimal.RequireFromString("109.95"), Quantity: 2})
		s.AddItem(domain.CartItem{ProductID: 3, Price: decimal.RequireFromString("22.30"), Quantity: 0})

		assert.Equal(t, "220.20", s.Total().Amount.StringFixed(2))
	})

	t.Run("random cart matches the sum of subtotals", func(t *testing.T) {
		s := newStore(t)
		want := decimal.Zero
		for i := range 20 {
			item := randomCartItem(int64(i + 1))
			s.AddItem(item)
			want = want.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		assert.True(t, want.Equal(s.Total().Amount))
	})
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := newStore(t)
	s.AddItem(randomCartItem(1))

	items := s.Items()
	items[0].Quantity = 1000

	assert.NotEqual(t, 1000, s.Items()[0].Quantity)
}

func TestCart(t *testing.T) {
	s := newStore(t)
	item := randomCartItem(3)
	s.AddItem(item)

	c := s.Cart()

	assertItems(t, []domain.CartItem{item}, c.Items)
	assert.True(t, item.Subtotal().Equal(c.Total.Amount))
	assert.True(t, s.Contains(item.ProductID))
	assert.False(t, s.Contains(item.ProductID+1))
}

func randomCartItem(productID int64) domain.CartItem {
	return domain.CartItem{
		ProductID: productID,
		Title:     gofakeit.ProductName(),
		Price:     decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Quantity:  gofakeit.IntRange(1, 5),
	}
}

func withQuantity(item domain.CartItem, quantity int) domain.CartItem {
	item.Quantity = quantity
	return item
}

func assertItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartItem{}, "CreatedAt"),
		cmpopts.EquateEmpty(),
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	for _, item := range actual {
		assert.Equal(t, now, item.CreatedAt)
	}
}
