package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/notice"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

type LoadStatus int

const (
	NotLoaded LoadStatus = iota
	Loading
	Loaded
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CatalogPage is what the catalog view shows for its current state.
type CatalogPage struct {
	catalog.Page
	Status     LoadStatus
	Criteria   domain.FilterCriteria
	SortKey    domain.SortKey
	Categories []string
}

// CatalogView owns the fetched products and the transient filter, sort and page state.
type CatalogView struct {
	source   port.ProductSource
	pipeline *catalog.Pipeline
	cart     *cart.Store
	notice   *notice.Notice
	logger   *zap.Logger
	defaults domain.FilterCriteria

	mu       sync.Mutex
	status   LoadStatus
	products []domain.Product
	byID     map[int64]domain.Product
	version  uint64
	criteria domain.FilterCriteria
	sortKey  domain.SortKey
	page     int
	cancel   context.CancelFunc
	done     chan struct{}
	closed   bool
}

func NewCatalogView(source port.ProductSource, pipeline *catalog.Pipeline, store *cart.Store, n *notice.Notice, defaults domain.FilterCriteria, logger *zap.Logger) *CatalogView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogView{
		source:   source,
		pipeline: pipeline,
		cart:     store,
		notice:   n,
		logger:   logger,
		defaults: defaults,
		criteria: defaults,
		sortKey:  domain.DefaultSortKey,
		page:     1,
	}
}

// Load starts the one product fetch of this view in the background. Later calls are
// no-ops. A failed or cancelled fetch leaves an empty catalog with status LoadFailed;
// a fetch finishing after Close is dropped.
func (v *CatalogView) Load(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.done != nil {
		return
	}

	loadCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.done = make(chan struct{})
	v.status = Loading

	go v.fetch(loadCtx, v.done)
}

func (v *CatalogView) fetch(ctx context.Context, done chan struct{}) {
	defer close(done)

	products, err := v.source.FetchProducts(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		v.logger.Debug("discarding product fetch of closed view")
		return
	}

	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			v.logger.Error("fetch products", zap.String("source", fetchErr.Source), zap.Error(fetchErr.Err))
		} else {
			v.logger.Error("fetch products", zap.Error(err))
		}
		v.status = LoadFailed
		v.setProducts(nil)
		return
	}

	v.status = Loaded
	v.setProducts(products)
	v.logger.Info("products loaded", zap.Int("count", len(products)))
}

func (v *CatalogView) setProducts(products []domain.Product) {
	v.products = append([]domain.Product{}, products...)
	v.byID = make(map[int64]domain.Product, len(products))
	for _, p := range v.products {
		v.byID[p.ID] = p
	}
	v.version++
}

// Wait blocks until the started fetch has finished or ctx is done.
func (v *CatalogView) Wait(ctx context.Context) error {
	v.mu.Lock()
	done := v.done
	v.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the view down: an in-flight fetch is cancelled and its result discarded.
func (v *CatalogView) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	cancel, done := v.cancel, v.done
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	if v.notice != nil {
		v.notice.Stop()
	}
}

func (v *CatalogView) SetCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria.SetCategory(category)
}

func (v *CatalogView) SetMinPrice(raw string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria.SetMinPrice(raw)
}

func (v *CatalogView) SetMaxPrice(raw string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria.SetMaxPrice(raw)
}

func (v *CatalogView) SetMinRating(raw string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria.SetMinRating(raw)
}

func (v *CatalogView) SetSearchText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria.SetSearchText(text)
}

func (v *CatalogView) SetSort(raw string) error {
	key, err := domain.ParseSortKey(raw)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortKey = key
	return nil
}

// SetPage stores the requested page; Render clamps it into range.
func (v *CatalogView) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = page
}

// ViewState is the filter, sort and page state changed as one unit by Update.
type ViewState struct {
	Criteria domain.FilterCriteria
	SortKey  domain.SortKey
	Page     int
}

// Update runs fn on a copy of the view state and commits the copy only if fn succeeds.
func (v *CatalogView) Update(fn func(*ViewState) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := ViewState{
		Criteria: v.criteria,
		SortKey:  v.sortKey,
		Page:     v.page,
	}
	if err := fn(&st); err != nil {
		return err
	}

	v.criteria = st.Criteria
	v.sortKey = st.SortKey
	v.page = st.Page
	return nil
}

func (v *CatalogView) ResetFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = v.defaults
	v.sortKey = domain.DefaultSortKey
	v.page = 1
}

func (v *CatalogView) Render() CatalogPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	in := catalog.Input{
		Version:  v.version,
		Products: v.products,
		Criteria: v.criteria,
		SortKey:  v.sortKey,
		Page:     v.page,
	}

	page := v.pipeline.Run(in)
	if clamped := catalog.ClampPage(v.page, page.TotalPages); clamped != v.page {
		v.page = clamped
		in.Page = clamped
		page = v.pipeline.Run(in)
	}

	return CatalogPage{
		Page:       page,
		Status:     v.status,
		Criteria:   v.criteria,
		SortKey:    v.sortKey,
		Categories: catalog.Categories(v.products),
	}
}

func (v *CatalogView) Product(id int64) (domain.Product, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, ok := v.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

// AddToCart copies the product into the cart and shows the added notice.
func (v *CatalogView) AddToCart(productID int64, quantity int) (domain.CartItem, error) {
	p, err := v.Product(productID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("add quantity %d: %w", quantity, domain.ErrInvalidQuantity)
	}

	item := domain.NewCartItem(p, quantity)
	v.cart.AddItem(item)

	if v.notice != nil {
		v.notice.Show(p.Title)
	}

	v.logger.Info("added to cart", zap.Int64("product_id", p.ID), zap.Int("quantity", quantity))
	return item, nil
}
