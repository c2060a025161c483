package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, snapshot domain.Snapshot) error
}
