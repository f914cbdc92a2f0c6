//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/fleximart/fleximart-etl/internal/testutil"
)

func testConfig() Config {
	return Config{
		Seed:      42,
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Days:      30,
		Facts:     40,
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	ds1 := NewGenerator(testConfig()).Generate()
	ds2 := NewGenerator(testConfig()).Generate()

	if !reflect.DeepEqual(ds1, ds2) {
		t.Error("same seed produced different datasets")
	}

	cfg := testConfig()
	cfg.Seed = 43
	ds3 := NewGenerator(cfg).Generate()
	if reflect.DeepEqual(ds1.Facts, ds3.Facts) {
		t.Error("different seeds produced identical facts")
	}
}

func TestGeneratorDateDimension(t *testing.T) {
	ds := NewGenerator(testConfig()).Generate()

	if len(ds.Dates) != 30 {
		t.Fatalf("dates = %d, want 30", len(ds.Dates))
	}

	first := ds.Dates[0]
	if first.DateKey != 20240115 {
		t.Errorf("first date_key = %d, want 20240115", first.DateKey)
	}
	if first.DayOfWeek != "Monday" {
		t.Errorf("2024-01-15 day_of_week = %q, want Monday", first.DayOfWeek)
	}
	if first.Quarter != "Q1" || first.Year != 2024 || first.MonthName != "January" {
		t.Errorf("first date row = %+v", first)
	}
	if first.IsWeekend {
		t.Error("2024-01-15 is a Monday, not a weekend")
	}

	// 30 days from Jan 15 crosses into February.
	last := ds.Dates[29]
	if last.DateKey != 20240213 {
		t.Errorf("last date_key = %d, want 20240213", last.DateKey)
	}
	if last.Month != 2 || last.MonthName != "February" {
		t.Errorf("last date row = %+v", last)
	}

	weekends := 0
	for _, d := range ds.Dates {
		if d.IsWeekend {
			weekends++
		}
	}
	if weekends != 8 {
		t.Errorf("weekend days = %d, want 8 in 30 days from a Monday", weekends)
	}
}

func TestGeneratorDimensions(t *testing.T) {
	ds := NewGenerator(testConfig()).Generate()

	if len(ds.Products) != 15 {
		t.Fatalf("products = %d, want 15", len(ds.Products))
	}
	if len(ds.Customers) != 12 {
		t.Fatalf("customers = %d, want 12", len(ds.Customers))
	}

	for i, p := range ds.Products {
		if p.ProductKey != i+1 {
			t.Errorf("product %s key = %d, want %d", p.ProductID, p.ProductKey, i+1)
		}
		if p.UnitPrice <= 0 {
			t.Errorf("product %s has non-positive price", p.ProductID)
		}
	}
	for i, c := range ds.Customers {
		if c.CustomerKey != i+1 {
			t.Errorf("customer %s key = %d, want %d", c.CustomerID, c.CustomerKey, i+1)
		}
	}

	categories := map[string]int{}
	for _, p := range ds.Products {
		categories[p.Category]++
	}
	if len(categories) != 3 {
		t.Errorf("categories = %v, want Electronics, Fashion and Groceries", categories)
	}
}

func TestGeneratorFacts(t *testing.T) {
	ds := NewGenerator(testConfig()).Generate()

	if len(ds.Facts) != 40 {
		t.Fatalf("facts = %d, want 40", len(ds.Facts))
	}

	dateKeys := map[int]DateRow{}
	for _, d := range ds.Dates {
		dateKeys[d.DateKey] = d
	}
	productKeys := map[int]ProductRow{}
	for _, p := range ds.Products {
		productKeys[p.ProductKey] = p
	}
	customerKeys := map[int]bool{}
	for _, c := range ds.Customers {
		customerKeys[c.CustomerKey] = true
	}

	for i, f := range ds.Facts {
		if f.SalesKey != i+1 {
			t.Errorf("fact %d sales_key = %d, want %d", i, f.SalesKey, i+1)
		}
		if _, ok := dateKeys[f.DateKey]; !ok {
			t.Errorf("fact %d references unknown date_key %d", i, f.DateKey)
		}
		product, ok := productKeys[f.ProductKey]
		if !ok {
			t.Errorf("fact %d references unknown product_key %d", i, f.ProductKey)
			continue
		}
		if !customerKeys[f.CustomerKey] {
			t.Errorf("fact %d references unknown customer_key %d", i, f.CustomerKey)
		}
		if f.Quantity < 1 || f.Quantity > 4 {
			t.Errorf("fact %d quantity = %d, want 1..4", i, f.Quantity)
		}
		if f.UnitPrice != product.UnitPrice {
			t.Errorf("fact %d unit_price = %v, want product price %v", i, f.UnitPrice, product.UnitPrice)
		}
		gross := float64(f.Quantity) * f.UnitPrice
		if f.DiscountAmount < 0 || f.DiscountAmount > gross*0.10+0.01 {
			t.Errorf("fact %d discount = %v out of range for gross %v", i, f.DiscountAmount, gross)
		}
		if want := round2(gross - f.DiscountAmount); f.TotalAmount != want {
			t.Errorf("fact %d total = %v, want %v", i, f.TotalAmount, want)
		}
	}
}

func TestSeedPostgres(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)
	connStr := testutil.CreateTestDB(t, baseConnStr, "warehouse")
	dbName := testutil.GetDBNameFromConnStr(connStr)
	defer testutil.DropTestDB(t, baseConnStr, dbName)

	pool := testutil.ConnectTestDB(t, connStr)
	defer pool.Close()

	ctx := context.Background()
	cfg := testConfig()

	ds, err := Seed(ctx, pool, cfg)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// Seeding again with the same seed replaces, not appends.
	if _, err := Seed(ctx, pool, cfg); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	counts := map[string]int{}
	for _, table := range []string{"dim_date", "dim_product", "dim_customer", "fact_sales"} {
		var n int
		if err := pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		counts[table] = n
	}
	if counts["dim_date"] != len(ds.Dates) || counts["dim_product"] != len(ds.Products) ||
		counts["dim_customer"] != len(ds.Customers) || counts["fact_sales"] != len(ds.Facts) {
		t.Errorf("table counts = %v, dataset = %d/%d/%d/%d", counts,
			len(ds.Dates), len(ds.Products), len(ds.Customers), len(ds.Facts))
	}
}
