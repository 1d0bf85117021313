package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	SourceShopee    = "shopee"
	SourceTokopedia = "tokopedia"
	SourceManual    = "manual"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Quantity    int       `json:"quantity"`
	Link        string    `json:"link,omitempty"`
	Source      string    `json:"source"`
	VariantID   *string   `json:"variant_id,omitempty"`
	VariantName *string   `json:"variant_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// CreateWithTx inserts the product inside an existing transaction so the
// caller can write an outbox record atomically alongside it.
func (r *ProductRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, p *Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Quantity <= 0 {
		p.Quantity = 1
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO products (id, event_id, name, price, stock, quantity, link, source, variant_id, variant_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		p.ID, p.EventID, p.Name, p.Price, p.Stock, p.Quantity, p.Link, p.Source, p.VariantID, p.VariantName,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	p := &Product{ID: id}

	err := r.db.pool.QueryRow(ctx, `
		SELECT event_id, name, price, stock, quantity, link, source, variant_id, variant_name, created_at
		FROM products
		WHERE id = $1`,
		id,
	).Scan(&p.EventID, &p.Name, &p.Price, &p.Stock, &p.Quantity, &p.Link, &p.Source, &p.VariantID, &p.VariantName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

func (r *ProductRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Product, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, event_id, name, price, stock, quantity, link, source, variant_id, variant_name, created_at
		FROM products
		WHERE event_id = $1
		ORDER BY created_at DESC`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Price, &p.Stock, &p.Quantity, &p.Link, &p.Source, &p.VariantID, &p.VariantName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, name string, price float64, stock, quantity int) (*Product, error) {
	p := &Product{ID: id, Name: name, Price: price, Stock: stock, Quantity: quantity}

	err := r.db.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, price = $3, stock = $4, quantity = $5
		WHERE id = $1
		RETURNING event_id, link, source, variant_id, variant_name, created_at`,
		id, name, price, stock, quantity,
	).Scan(&p.EventID, &p.Link, &p.Source, &p.VariantID, &p.VariantName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EventBudget returns the running total for an event: sum of price times
// quantity over all of its products.
func (r *ProductRepository) EventBudget(ctx context.Context, eventID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(price * quantity), 0)
		FROM products
		WHERE event_id = $1`,
		eventID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to compute budget: %w", err)
	}
	return total, nil
}
