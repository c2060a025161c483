package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultReceiptQueue = "receipts"

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type ReceiptMessage struct {
	ReceiptID  string        `json:"receipt_id"`
	Lines      []ReceiptLine `json:"lines"`
	Total      string        `json:"total"`
	Currency   string        `json:"currency"`
	CapturedAt time.Time     `json:"captured_at"`
}

type ReceiptLine struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// ReceiptPublisher sends confirmed checkout snapshots to a queue on the default exchange.
type ReceiptPublisher struct {
	ch    Channel
	queue string
}

func NewReceiptPublisher(ch Channel, queue string) *ReceiptPublisher {
	if queue == "" {
		queue = DefaultReceiptQueue
	}
	return &ReceiptPublisher{ch: ch, queue: queue}
}

// DeclareReceiptQueue declares the durable queue receipts are routed to.
func DeclareReceiptQueue(ch *amqp.Channel, queue string) (string, error) {
	if queue == "" {
		queue = DefaultReceiptQueue
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("ch.QueueDeclare: %w", err)
	}

	return q.Name, nil
}

func (p *ReceiptPublisher) PublishReceipt(ctx context.Context, snapshot domain.Snapshot) error {
	body, err := json.Marshal(NewReceiptMessage(snapshot))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    snapshot.ID.String(),
		Timestamp:    snapshot.CapturedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("ch.PublishWithContext: %w", err)
	}

	return nil
}

func NewReceiptMessage(s domain.Snapshot) ReceiptMessage {
	lines := make([]ReceiptLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, ReceiptLine{
			ProductID: l.ProductID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.Amount.StringFixed(2),
			Subtotal:  l.Subtotal.Amount.StringFixed(2),
		})
	}

	return ReceiptMessage{
		ReceiptID:  s.ID.String(),
		Lines:      lines,
		Total:      s.Total.Amount.StringFixed(2),
		Currency:   s.Total.Currency.String(),
		CapturedAt: s.CapturedAt,
	}
}

type NoopPublisher struct{}

func (NoopPublisher) PublishReceipt(context.Context, domain.Snapshot) error {
	return nil
}
