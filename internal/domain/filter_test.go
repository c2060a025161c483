package domain_test

import (
	"testing"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCriteria_SetPriceBounds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    decimal.Decimal
		wantErr bool
	}{
		{name: "integer", raw: "50", want: decimal.NewFromInt(50)},
		{name: "fraction", raw: "19.99", want: decimal.RequireFromString("19.99")},
		{name: "surrounding spaces", raw: " 7 ", want: decimal.NewFromInt(7)},
		{name: "zero", raw: "0", want: decimal.Zero},
		{name: "error: negative", raw: "-1", wantErr: true},
		{name: "error: not a number", raw: "abc", wantErr: true},
		{name: "error: empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("min "+tt.name, func(t *testing.T) {
			c := domain.DefaultFilterCriteria(domain.DefaultMaxPrice)

			err := c.SetMinPrice(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidFilter)
				assert.True(t, c.MinPrice.IsZero(), "min price must be kept")
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(c.MinPrice), "got %s", c.MinPrice)
		})

		t.Run("max "+tt.name, func(t *testing.T) {
			c := domain.DefaultFilterCriteria(domain.DefaultMaxPrice)

			err := c.SetMaxPrice(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidFilter)
				assert.True(t, domain.DefaultMaxPrice.Equal(c.MaxPrice), "max price must be kept")
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(c.MaxPrice), "got %s", c.MaxPrice)
		})
	}
}

func TestFilterCriteria_SetMinRating(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "zero", raw: "0", want: 0},
		{name: "fraction", raw: "3.5", want: 3.5},
		{name: "upper bound", raw: "5", want: 5},
		{name: "error: above five", raw: "5.1", wantErr: true},
		{name: "error: negative", raw: "-0.5", wantErr: true},
		{name: "error: NaN", raw: "NaN", wantErr: true},
		{name: "error: not a number", raw: "good", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.DefaultFilterCriteria(domain.DefaultMaxPrice)
			c.MinRating = 1

			err := c.SetMinRating(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidFilter)
				assert.Equal(t, 1.0, c.MinRating)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.MinRating)
		})
	}
}

func TestFilterCriteria_SetCategory(t *testing.T) {
	c := domain.DefaultFilterCriteria(domain.DefaultMaxPrice)

	c.SetCategory(" jewelery ")
	assert.Equal(t, "jewelery", c.Category)

	c.SetCategory("ALL")
	assert.Empty(t, c.Category)
}

func TestFilterCriteria_Equal(t *testing.T) {
	a := domain.DefaultFilterCriteria(decimal.RequireFromString("1000.00"))
	b := domain.DefaultFilterCriteria(decimal.NewFromInt(1000))
	assert.True(t, a.Equal(b), "equal amounts with different exponents")

	b.SetSearchText("shirt")
	assert.False(t, a.Equal(b))
}
