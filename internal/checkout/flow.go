package checkout

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/pkg/clock"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

// Cart is the part of the cart store the checkout dialog needs.
type Cart interface {
	Cart() domain.Cart
	Clear()
}

type Options struct {
	ClearOnConfirm bool
	Publisher      port.ReceiptPublisher
	Clock          clock.Clock
	Logger         *zap.Logger
}

// Flow is the checkout dialog: Idle -> Reviewing -> Confirmed, with Reviewing -> Idle on
// cancel and Confirmed -> Idle on close. The snapshot shown while reviewing and after
// confirming is the cart as it was when review started.
type Flow struct {
	cart           Cart
	clearOnConfirm bool
	publisher      port.ReceiptPublisher
	clock          clock.Clock
	logger         *zap.Logger

	mu       sync.Mutex
	state    domain.CheckoutState
	snapshot *domain.Snapshot
}

func NewFlow(cart Cart, opts Options) *Flow {
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Flow{
		cart:           cart,
		clearOnConfirm: opts.ClearOnConfirm,
		publisher:      opts.Publisher,
		clock:          opts.Clock,
		logger:         opts.Logger,
		state:          domain.CheckoutIdle,
	}
}

// Begin opens the review when the cart total is positive and reports whether the flow
// is reviewing afterwards. An empty or zero-priced cart leaves the state unchanged.
func (f *Flow) Begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == domain.CheckoutReviewing {
		return true
	}

	cart := f.cart.Cart()
	if !cart.Total.IsPositive() {
		f.logger.Info("checkout rejected, cart total is not positive", zap.Stringer("total", cart.Total))
		return false
	}

	snapshot := domain.NewSnapshot(uuid.New(), cart, f.clock.Now())
	f.snapshot = &snapshot
	f.state = domain.CheckoutReviewing

	f.logger.Info("checkout review started",
		zap.Stringer("snapshot_id", snapshot.ID),
		zap.Int("lines", len(snapshot.Lines)),
		zap.Stringer("total", snapshot.Total))

	return true
}

// Confirm completes the review and returns the snapshot taken by Begin.
// The receipt is published after the flow lock is released.
func (f *Flow) Confirm(ctx context.Context) (domain.Snapshot, error) {
	f.mu.Lock()

	if f.state != domain.CheckoutReviewing {
		state := f.state
		f.mu.Unlock()
		return domain.Snapshot{}, fmt.Errorf("confirm from %s: %w", state, domain.ErrInvalidTransition)
	}

	f.state = domain.CheckoutConfirmed
	snapshot := cloneSnapshot(*f.snapshot)

	if f.clearOnConfirm {
		f.cart.Clear()
	}
	f.mu.Unlock()

	if f.publisher != nil {
		if err := f.publisher.PublishReceipt(ctx, snapshot); err != nil {
			f.logger.Error("publish receipt", zap.Stringer("snapshot_id", snapshot.ID), zap.Error(err))
		}
	}

	f.logger.Info("checkout confirmed",
		zap.Stringer("snapshot_id", snapshot.ID),
		zap.Bool("cart_cleared", f.clearOnConfirm))

	return snapshot, nil
}

// Cancel closes the review without confirming. It is a no-op outside Reviewing.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != domain.CheckoutReviewing {
		return
	}
	f.state = domain.CheckoutIdle
	f.snapshot = nil
}

// Close dismisses the confirmation. It is a no-op outside Confirmed.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != domain.CheckoutConfirmed {
		return
	}
	f.state = domain.CheckoutIdle
	f.snapshot = nil
}

func (f *Flow) State() domain.CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Snapshot() (domain.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.snapshot == nil {
		return domain.Snapshot{}, false
	}
	return cloneSnapshot(*f.snapshot), true
}

func cloneSnapshot(s domain.Snapshot) domain.Snapshot {
	s.Lines = slices.Clone(s.Lines)
	return s
}
