package storefront

import (
	"context"
	"time"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/notice"
	"github.com/nikolayk812/storefront/internal/pkg/clock"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type Options struct {
	Source         port.ProductSource
	Publisher      port.ReceiptPublisher
	Currency       currency.Unit
	Language       language.Tag
	PageSize       int
	MaxPrice       decimal.Decimal
	ClearOnConfirm bool
	NoticeDuration time.Duration
	Clock          clock.Clock
	Logger         *zap.Logger
}

// Session is one shopper's storefront: a catalog view, a cart, the checkout dialog
// and the added-to-cart notice.
type Session struct {
	Catalog  *CatalogView
	Cart     *cart.Store
	Checkout *checkout.Flow
	Notice   *notice.Notice

	logger *zap.Logger
}

func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Currency == (currency.Unit{}) {
		opts.Currency = currency.USD
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if !opts.MaxPrice.IsPositive() {
		opts.MaxPrice = domain.DefaultMaxPrice
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = notice.DefaultDuration
	}

	store := cart.NewStore(opts.Currency, opts.Clock, opts.Logger.Named("cart"))
	n := notice.New(opts.NoticeDuration)

	flow := checkout.NewFlow(store, checkout.Options{
		ClearOnConfirm: opts.ClearOnConfirm,
		Publisher:      opts.Publisher,
		Clock:          opts.Clock,
		Logger:         opts.Logger.Named("checkout"),
	})

	view := NewCatalogView(
		opts.Source,
		catalog.NewPipeline(opts.Language, opts.PageSize),
		store,
		n,
		domain.DefaultFilterCriteria(opts.MaxPrice),
		opts.Logger.Named("catalog"),
	)

	return &Session{
		Catalog:  view,
		Cart:     store,
		Checkout: flow,
		Notice:   n,
		logger:   opts.Logger,
	}
}

// Start kicks off the catalog fetch.
func (s *Session) Start(ctx context.Context) {
	s.Catalog.Load(ctx)
}

// Close tears down the catalog view, which also cancels a pending notice hide.
func (s *Session) Close() {
	s.Catalog.Close()
	s.logger.Debug("session closed")
}
