//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package etl implements the FlexiMart batch ETL pipeline: it loads raw
// customer, product and sales CSV files, cleans them, maps sales rows to
// orders and order items, replaces the target tables and produces a data
// quality report.
package etl

import (
	"context"
	"time"
)

// Record is one raw CSV row keyed by column name. All values are
// whitespace-normalized strings; missing columns read as "".
type Record map[string]string

// Get returns the value for a column, or "" if absent.
func (r Record) Get(col string) string {
	return r[col]
}

// Customer is a cleaned customer row ready for loading.
// Email is always populated; Phone is "" when not recoverable and a zero
// RegistrationDate loads as NULL.
type Customer struct {
	CustomerID       string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	City             string
	RegistrationDate time.Time
}

// Product is a cleaned product row ready for loading.
// Price is always set, imputed from category medians when missing in the
// raw data.
type Product struct {
	ProductID     string
	ProductName   string
	Category      Category
	Price         float64
	StockQuantity int
}

// Order is one order derived from a single sales transaction.
type Order struct {
	OrderID     int
	CustomerID  string
	OrderDate   time.Time
	TotalAmount float64
	Status      string
}

// OrderItem is the single line item of an Order.
type OrderItem struct {
	OrderItemID int
	OrderID     int
	ProductID   string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

// Snapshot is the full cleaned output of one pipeline run. The target
// tables are replaced with exactly this content.
type Snapshot struct {
	Customers  []Customer
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
}

// Store persists pipeline output. Replace must swap the target tables
// atomically: on error the previous table contents remain visible.
type Store interface {
	CreateSchema(ctx context.Context) error
	Replace(ctx context.Context, snap Snapshot) error
}
