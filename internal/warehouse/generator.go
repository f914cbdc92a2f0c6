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
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/fleximart-etl/internal/datagen"
	"github.com/fleximart/fleximart-etl/internal/logging"
)

// DateRow is one row of dim_date.
type DateRow struct {
	DateKey    int
	FullDate   time.Time
	DayOfWeek  string
	DayOfMonth int
	Month      int
	MonthName  string
	Quarter    string
	Year       int
	IsWeekend  bool
}

// ProductRow is one row of dim_product.
type ProductRow struct {
	ProductKey  int
	ProductID   string
	ProductName string
	Category    string
	Subcategory string
	UnitPrice   float64
}

// CustomerRow is one row of dim_customer.
type CustomerRow struct {
	CustomerKey  int
	CustomerID   string
	CustomerName string
	City         string
	State        string
	Segment      string
}

// FactRow is one row of fact_sales.
type FactRow struct {
	SalesKey       int
	DateKey        int
	ProductKey     int
	CustomerKey    int
	Quantity       int
	UnitPrice      float64
	DiscountAmount float64
	TotalAmount    float64
}

// Dataset is one full deterministic warehouse load.
type Dataset struct {
	Dates     []DateRow
	Products  []ProductRow
	Customers []CustomerRow
	Facts     []FactRow
}

// Fixed product catalog across the three FlexiMart categories.
var productCatalog = []ProductRow{
	{ProductID: "P001", ProductName: "Samsung Galaxy S21", Category: "Electronics", Subcategory: "Smartphones", UnitPrice: 45999.00},
	{ProductID: "P003", ProductName: "Apple MacBook Pro", Category: "Electronics", Subcategory: "Laptops", UnitPrice: 99999.00},
	{ProductID: "P005", ProductName: "Sony Headphones", Category: "Electronics", Subcategory: "Audio", UnitPrice: 1999.00},
	{ProductID: "P007", ProductName: "HP Laptop", Category: "Electronics", Subcategory: "Laptops", UnitPrice: 52999.00},
	{ProductID: "P012", ProductName: "Dell Monitor 24inch", Category: "Electronics", Subcategory: "Monitors", UnitPrice: 12999.00},
	{ProductID: "P014", ProductName: "iPhone 13", Category: "Electronics", Subcategory: "Smartphones", UnitPrice: 69999.00},
	{ProductID: "P002", ProductName: "Nike Running Shoes", Category: "Fashion", Subcategory: "Footwear", UnitPrice: 3499.00},
	{ProductID: "P004", ProductName: "Levi's Jeans", Category: "Fashion", Subcategory: "Clothing", UnitPrice: 2999.00},
	{ProductID: "P008", ProductName: "Adidas T-Shirt", Category: "Fashion", Subcategory: "Clothing", UnitPrice: 1299.00},
	{ProductID: "P011", ProductName: "Puma Sneakers", Category: "Fashion", Subcategory: "Footwear", UnitPrice: 4599.00},
	{ProductID: "P013", ProductName: "Woodland Shoes", Category: "Fashion", Subcategory: "Footwear", UnitPrice: 5499.00},
	{ProductID: "P006", ProductName: "Organic Almonds", Category: "Groceries", Subcategory: "Dry Fruits", UnitPrice: 899.00},
	{ProductID: "P009", ProductName: "Basmati Rice 5kg", Category: "Groceries", Subcategory: "Staples", UnitPrice: 650.00},
	{ProductID: "P015", ProductName: "Organic Honey 500g", Category: "Groceries", Subcategory: "Condiments", UnitPrice: 450.00},
	{ProductID: "P018", ProductName: "Masoor Dal 1kg", Category: "Groceries", Subcategory: "Staples", UnitPrice: 120.00},
}

// Fixed customer list spanning multiple cities and segments.
var customerList = []CustomerRow{
	{CustomerID: "C001", CustomerName: "Rahul Sharma", City: "Bangalore", State: "Karnataka", Segment: "Retail"},
	{CustomerID: "C002", CustomerName: "Priya Patel", City: "Mumbai", State: "Maharashtra", Segment: "Premium"},
	{CustomerID: "C003", CustomerName: "Amit Kumar", City: "Delhi", State: "Delhi", Segment: "Retail"},
	{CustomerID: "C004", CustomerName: "Sneha Reddy", City: "Hyderabad", State: "Telangana", Segment: "Premium"},
	{CustomerID: "C005", CustomerName: "Vikram Singh", City: "Chennai", State: "Tamil Nadu", Segment: "Retail"},
	{CustomerID: "C006", CustomerName: "Anjali Mehta", City: "Bangalore", State: "Karnataka", Segment: "Premium"},
	{CustomerID: "C009", CustomerName: "Karthik Nair", City: "Kochi", State: "Kerala", Segment: "Retail"},
	{CustomerID: "C011", CustomerName: "Arjun Rao", City: "Hyderabad", State: "Telangana", Segment: "Premium"},
	{CustomerID: "C013", CustomerName: "Suresh Patel", City: "Mumbai", State: "Maharashtra", Segment: "Retail"},
	{CustomerID: "C014", CustomerName: "Neha Shah", City: "Ahmedabad", State: "Gujarat", Segment: "Retail"},
	{CustomerID: "C017", CustomerName: "Rajesh Kumar", City: "Delhi", State: "Delhi", Segment: "Premium"},
	{CustomerID: "C020", CustomerName: "Swati Desai", City: "Pune", State: "Maharashtra", Segment: "Retail"},
}

// Config controls the generated dataset.
type Config struct {
	// Seed initializes the PRNG; identical seeds yield identical data.
	Seed uint64

	// StartDate is the first day in dim_date.
	StartDate time.Time

	// Days is the number of consecutive days in dim_date.
	Days int

	// Facts is the number of fact_sales rows.
	Facts int
}

// Generator produces deterministic warehouse datasets.
type Generator struct {
	faker *datagen.Faker
	cfg   Config
}

// NewGenerator creates a generator for the given config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		faker: datagen.NewFakerWithSeed(cfg.Seed),
		cfg:   cfg,
	}
}

// Generate builds the full dataset in memory.
func (g *Generator) Generate() Dataset {
	dates := g.generateDates()
	products := g.products()
	customers := g.customers()
	facts := g.generateFacts(dates, products, customers)

	return Dataset{
		Dates:     dates,
		Products:  products,
		Customers: customers,
		Facts:     facts,
	}
}

func (g *Generator) generateDates() []DateRow {
	rows := make([]DateRow, g.cfg.Days)
	for i := range rows {
		d := g.cfg.StartDate.AddDate(0, 0, i)
		wd := d.Weekday()
		rows[i] = DateRow{
			DateKey:    d.Year()*10000 + int(d.Month())*100 + d.Day(),
			FullDate:   d,
			DayOfWeek:  wd.String(),
			DayOfMonth: d.Day(),
			Month:      int(d.Month()),
			MonthName:  d.Month().String(),
			Quarter:    fmt.Sprintf("Q%d", (int(d.Month())-1)/3+1),
			Year:       d.Year(),
			IsWeekend:  wd == time.Saturday || wd == time.Sunday,
		}
	}
	return rows
}

func (g *Generator) products() []ProductRow {
	rows := make([]ProductRow, len(productCatalog))
	copy(rows, productCatalog)
	for i := range rows {
		rows[i].ProductKey = i + 1
	}
	return rows
}

func (g *Generator) customers() []CustomerRow {
	rows := make([]CustomerRow, len(customerList))
	copy(rows, customerList)
	for i := range rows {
		rows[i].CustomerKey = i + 1
	}
	return rows
}

// generateFacts draws fact rows with a weekend lift: weekend dates are
// three times as likely as weekdays and carry higher discount odds.
func (g *Generator) generateFacts(dates []DateRow, products []ProductRow, customers []CustomerRow) []FactRow {
	dateWeights := make([]int, len(dates))
	for i, d := range dates {
		if d.IsWeekend {
			dateWeights[i] = 3
		} else {
			dateWeights[i] = 1
		}
	}

	weekendDiscounts := []float64{0, 0, 0.05, 0.10}
	weekdayDiscounts := []float64{0, 0, 0.05}

	facts := make([]FactRow, g.cfg.Facts)
	for i := range facts {
		date := datagen.ChooseWeighted(g.faker, dates, dateWeights)
		product := datagen.Choose(g.faker, products)
		customer := datagen.Choose(g.faker, customers)

		quantity := datagen.ChooseWeighted(g.faker, []int{1, 2, 3, 4}, []int{3, 2, 1, 1})

		var rate float64
		if date.IsWeekend {
			rate = datagen.Choose(g.faker, weekendDiscounts)
		} else {
			rate = datagen.Choose(g.faker, weekdayDiscounts)
		}

		gross := float64(quantity) * product.UnitPrice
		discount := round2(gross * rate)

		facts[i] = FactRow{
			SalesKey:       i + 1,
			DateKey:        date.DateKey,
			ProductKey:     product.ProductKey,
			CustomerKey:    customer.CustomerKey,
			Quantity:       quantity,
			UnitPrice:      product.UnitPrice,
			DiscountAmount: discount,
			TotalAmount:    round2(gross - discount),
		}
	}
	return facts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Seed creates the star schema and replaces its contents with a freshly
// generated dataset inside a single transaction.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg Config) (Dataset, error) {
	if err := CreateSchema(ctx, pool); err != nil {
		return Dataset{}, err
	}

	ds := NewGenerator(cfg).Generate()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        TRUNCATE TABLE fact_sales, dim_customer, dim_product, dim_date
        RESTART IDENTITY CASCADE
    `)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to truncate warehouse tables: %w", err)
	}

	if err := loadDataset(ctx, tx, ds); err != nil {
		return Dataset{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Dataset{}, fmt.Errorf("failed to commit warehouse load: %w", err)
	}

	logging.Info().
		Int("dates", len(ds.Dates)).
		Int("products", len(ds.Products)).
		Int("customers", len(ds.Customers)).
		Int("facts", len(ds.Facts)).
		Uint64("seed", cfg.Seed).
		Msg("Warehouse seeded")

	return ds, nil
}

func loadDataset(ctx context.Context, tx pgx.Tx, ds Dataset) error {
	dateRows := make([][]any, len(ds.Dates))
	for i, d := range ds.Dates {
		dateRows[i] = []any{
			d.DateKey, d.FullDate, d.DayOfWeek, d.DayOfMonth,
			d.Month, d.MonthName, d.Quarter, d.Year, d.IsWeekend,
		}
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"dim_date"},
		[]string{"date_key", "full_date", "day_of_week", "day_of_month", "month", "month_name", "quarter", "year", "is_weekend"},
		pgx.CopyFromRows(dateRows))
	if err != nil {
		return fmt.Errorf("failed to load dim_date: %w", err)
	}

	productRows := make([][]any, len(ds.Products))
	for i, p := range ds.Products {
		productRows[i] = []any{p.ProductKey, p.ProductID, p.ProductName, p.Category, p.Subcategory, p.UnitPrice}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"dim_product"},
		[]string{"product_key", "product_id", "product_name", "category", "subcategory", "unit_price"},
		pgx.CopyFromRows(productRows))
	if err != nil {
		return fmt.Errorf("failed to load dim_product: %w", err)
	}

	customerRows := make([][]any, len(ds.Customers))
	for i, c := range ds.Customers {
		customerRows[i] = []any{c.CustomerKey, c.CustomerID, c.CustomerName, c.City, c.State, c.Segment}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"dim_customer"},
		[]string{"customer_key", "customer_id", "customer_name", "city", "state", "segment"},
		pgx.CopyFromRows(customerRows))
	if err != nil {
		return fmt.Errorf("failed to load dim_customer: %w", err)
	}

	factRows := make([][]any, len(ds.Facts))
	for i, f := range ds.Facts {
		factRows[i] = []any{
			f.SalesKey, f.DateKey, f.ProductKey, f.CustomerKey,
			f.Quantity, f.UnitPrice, f.DiscountAmount, f.TotalAmount,
		}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"fact_sales"},
		[]string{"sales_key", "date_key", "product_key", "customer_key", "quantity", "unit_price", "discount_amount", "total_amount"},
		pgx.CopyFromRows(factRows))
	if err != nil {
		return fmt.Errorf("failed to load fact_sales: %w", err)
	}

	return nil
}
