//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/fleximart-etl/internal/logging"
)

// Schema SQL for the normalized target tables. Surrogate order IDs are
// assigned by the pipeline, not by the database, so the order tables
// have plain integer keys.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id       VARCHAR(20) PRIMARY KEY,
    first_name        VARCHAR(50) NOT NULL,
    last_name         VARCHAR(50) NOT NULL,
    email             VARCHAR(100) UNIQUE NOT NULL,
    phone             VARCHAR(20),
    city              VARCHAR(50),
    registration_date DATE
);

CREATE TABLE IF NOT EXISTS products (
    product_id     VARCHAR(20) PRIMARY KEY,
    product_name   VARCHAR(100) NOT NULL,
    category       VARCHAR(50) NOT NULL,
    price          NUMERIC(10,2) NOT NULL,
    stock_quantity INTEGER DEFAULT 0,
    CONSTRAINT products_price_check CHECK (price >= 0)
);

CREATE TABLE IF NOT EXISTS orders (
    order_id     INTEGER PRIMARY KEY,
    customer_id  VARCHAR(20) NOT NULL REFERENCES customers(customer_id),
    order_date   DATE NOT NULL,
    total_amount NUMERIC(10,2) NOT NULL,
    status       VARCHAR(20) DEFAULT 'Pending'
);

CREATE TABLE IF NOT EXISTS order_items (
    order_item_id INTEGER PRIMARY KEY,
    order_id      INTEGER NOT NULL REFERENCES orders(order_id),
    product_id    VARCHAR(20) NOT NULL REFERENCES products(product_id),
    quantity      INTEGER NOT NULL,
    unit_price    NUMERIC(10,2) NOT NULL,
    subtotal      NUMERIC(10,2) NOT NULL
);
`

// PostgresStore persists pipeline output to PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateSchema creates the target tables if they don't exist.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Replace swaps the target tables with the snapshot contents in a single
// transaction. A failed run rolls back and leaves the previous state
// visible, so re-running the pipeline is idempotent.
func (s *PostgresStore) Replace(ctx context.Context, snap Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        TRUNCATE TABLE order_items, orders, products, customers
        RESTART IDENTITY CASCADE
    `)
	if err != nil {
		return fmt.Errorf("failed to truncate target tables: %w", err)
	}

	if err := copyCustomers(ctx, tx, snap.Customers); err != nil {
		return err
	}
	if err := copyProducts(ctx, tx, snap.Products); err != nil {
		return err
	}
	if err := copyOrders(ctx, tx, snap.Orders); err != nil {
		return err
	}
	if err := copyOrderItems(ctx, tx, snap.OrderItems); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}

	logging.Info().
		Int("customers", len(snap.Customers)).
		Int("products", len(snap.Products)).
		Int("orders", len(snap.Orders)).
		Int("order_items", len(snap.OrderItems)).
		Msg("Target tables replaced")

	return nil
}

func copyCustomers(ctx context.Context, tx pgx.Tx, customers []Customer) error {
	rows := make([][]any, len(customers))
	for i, c := range customers {
		var phone any
		if c.Phone != "" {
			phone = c.Phone
		}
		var regDate any
		if !c.RegistrationDate.IsZero() {
			regDate = c.RegistrationDate
		}
		rows[i] = []any{c.CustomerID, c.FirstName, c.LastName, c.Email, phone, c.City, regDate}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"customers"},
		[]string{"customer_id", "first_name", "last_name", "email", "phone", "city", "registration_date"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	return nil
}

func copyProducts(ctx context.Context, tx pgx.Tx, products []Product) error {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{p.ProductID, p.ProductName, p.Category.String(), p.Price, p.StockQuantity}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"products"},
		[]string{"product_id", "product_name", "category", "price", "stock_quantity"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	return nil
}

func copyOrders(ctx context.Context, tx pgx.Tx, orders []Order) error {
	rows := make([][]any, len(orders))
	for i, o := range orders {
		rows[i] = []any{o.OrderID, o.CustomerID, o.OrderDate, o.TotalAmount, o.Status}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"orders"},
		[]string{"order_id", "customer_id", "order_date", "total_amount", "status"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	return nil
}

func copyOrderItems(ctx context.Context, tx pgx.Tx, items []OrderItem) error {
	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = []any{it.OrderItemID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "subtotal"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	return nil
}
