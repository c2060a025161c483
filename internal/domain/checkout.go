package domain

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutReviewing
	CheckoutConfirmed
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutReviewing:
		return "reviewing"
	case CheckoutConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the cart taken when checkout review starts.
type Snapshot struct {
	ID         uuid.UUID
	Lines      []SnapshotLine
	Total      Money
	CapturedAt time.Time
}

type SnapshotLine struct {
	ProductID int64
	Title     string
	Quantity  int
	UnitPrice Money
	Subtotal  Money
}

func NewSnapshot(id uuid.UUID, cart Cart, capturedAt time.Time) Snapshot {
	lines := make([]SnapshotLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, SnapshotLine{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: Money{Amount: item.Price, Currency: cart.Total.Currency},
			Subtotal:  Money{Amount: item.Subtotal(), Currency: cart.Total.Currency},
		})
	}

	return Snapshot{
		ID:         id,
		Lines:      lines,
		Total:      cart.Total,
		CapturedAt: capturedAt,
	}
}
