package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/radityabp/eventbudget/internal/database"
)

// ActivityType represents the type of activity record
type ActivityType string

const (
	// ActivityProductImported is published when a product lands in an event's budget
	ActivityProductImported ActivityType = "PRODUCT_IMPORTED"
)

// ProductImportedPayload is the stream payload for PRODUCT_IMPORTED.
type ProductImportedPayload struct {
	ActivityID   string    `json:"activity_id"`
	ActivityType string    `json:"activity_type"`
	Timestamp    time.Time `json:"timestamp"`
	EventID      string    `json:"event_id"`
	ProductID    string    `json:"product_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	Quantity     int       `json:"quantity"`
	Link         string    `json:"link,omitempty"`
	Source       string    `json:"source"`
	VariantID    string    `json:"variant_id,omitempty"`
	VariantName  string    `json:"variant_name,omitempty"`
}

// TxRunner interface for running transactions (for testing)
type TxRunner interface {
	Transaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// ProductStore interface for transactional product writes (for testing)
type ProductStore interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, p *database.Product) error
}

// OutboxStore interface for transactional outbox writes (for testing)
type OutboxStore interface {
	InsertWithTx(ctx context.Context, tx pgx.Tx, event *database.OutboxEvent) error
}

// Publisher writes activity records through the transactional outbox.
type Publisher struct {
	db       TxRunner
	products ProductStore
	outbox   OutboxStore
	logger   *slog.Logger
}

func NewPublisher(db *database.DB, logger *slog.Logger) *Publisher {
	return &Publisher{
		db:       db,
		products: database.NewProductRepository(db),
		outbox:   database.NewOutboxRepository(db),
		logger:   logger.With("component", "event_publisher"),
	}
}

// ImportProduct inserts the product and its PRODUCT_IMPORTED activity
// record in one transaction, so neither lands without the other.
func (p *Publisher) ImportProduct(ctx context.Context, product *database.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	payload := &ProductImportedPayload{
		ActivityID:   uuid.New().String(),
		ActivityType: string(ActivityProductImported),
		Timestamp:    time.Now(),
		EventID:      product.EventID.String(),
		ProductID:    product.ID.String(),
		Name:         product.Name,
		Price:        product.Price,
		Stock:        product.Stock,
		Quantity:     product.Quantity,
		Link:         product.Link,
		Source:       product.Source,
	}
	if product.VariantID != nil {
		payload.VariantID = *product.VariantID
	}
	if product.VariantName != nil {
		payload.VariantName = *product.VariantName
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal activity: %w", err)
	}

	outboxEvent := &database.OutboxEvent{
		AggregateType: "product",
		AggregateID:   product.ID.String(),
		EventType:     string(ActivityProductImported),
		Payload:       data,
		TargetStream:  database.DefaultActivityStream,
	}

	err = p.db.Transaction(ctx, func(tx pgx.Tx) error {
		if err := p.products.CreateWithTx(ctx, tx, product); err != nil {
			return err
		}
		if err := p.outbox.InsertWithTx(ctx, tx, outboxEvent); err != nil {
			return fmt.Errorf("failed to insert outbox event: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import product: %w", err)
	}

	p.logger.Info("activity published to outbox",
		"type", payload.ActivityType,
		"activity_id", payload.ActivityID,
		"product_id", payload.ProductID,
		"outbox_id", outboxEvent.ID,
	)

	return nil
}
