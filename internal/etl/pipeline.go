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
	"os"

	"github.com/fleximart/fleximart-etl/internal/logging"
)

// Sources names the three raw input files.
type Sources struct {
	CustomersPath string
	ProductsPath  string
	SalesPath     string
}

// Pipeline runs the full extract-transform-load sequence against a
// Store. A Pipeline is single-use: one call to Run per instance.
type Pipeline struct {
	store   Store
	sources Sources
}

// NewPipeline creates a pipeline reading from the given sources and
// loading into the given store.
func NewPipeline(store Store, sources Sources) *Pipeline {
	return &Pipeline{store: store, sources: sources}
}

// Run executes the pipeline: read all three sources, clean and map them
// in memory, replace the target tables and return the quality report.
// Structural input failures and store failures abort the run before the
// target tables change.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	rawCustomers, err := ReadCustomers(p.sources.CustomersPath)
	if err != nil {
		return Report{}, err
	}
	rawProducts, err := ReadProducts(p.sources.ProductsPath)
	if err != nil {
		return Report{}, err
	}
	rawSales, err := ReadSales(p.sources.SalesPath)
	if err != nil {
		return Report{}, err
	}

	logging.Info().
		Int("customers", len(rawCustomers)).
		Int("products", len(rawProducts)).
		Int("sales", len(rawSales)).
		Msg("Raw sources loaded")

	rb := NewReportBuilder()

	customers := CleanCustomers(rawCustomers, rb)
	products := CleanProducts(rawProducts, rb)
	orders, items := MapSales(rawSales, customers, products, rb)

	snap := Snapshot{
		Customers:  customers,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
	}

	if err := p.store.CreateSchema(ctx); err != nil {
		return Report{}, err
	}
	if err := p.store.Replace(ctx, snap); err != nil {
		return Report{}, err
	}

	rb.Loaded("customers", len(customers))
	rb.Loaded("products", len(products))
	rb.Loaded("orders", len(orders))
	rb.Loaded("order_items", len(items))

	return rb.Build(), nil
}

// WriteReport renders the report artifact to a file.
func WriteReport(report Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := report.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logging.Info().Str("path", path).Msg("Data quality report written")
	return nil
}
