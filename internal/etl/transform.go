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
	"strconv"

	"github.com/fleximart/fleximart-etl/internal/logging"
)

// dedupe removes records with duplicate key values, keeping the first
// occurrence in file order. Records with an empty key are dropped and
// counted separately so the report reconciles rows read against drops.
func dedupe(raws []Record, key string) (kept []Record, dupes, missingKey int) {
	seen := make(map[string]struct{}, len(raws))
	for _, rec := range raws {
		id := rec.Get(key)
		if id == "" {
			missingKey++
			continue
		}
		if _, ok := seen[id]; ok {
			dupes++
			continue
		}
		seen[id] = struct{}{}
		kept = append(kept, rec)
	}
	return kept, dupes, missingKey
}

// CleanCustomers deduplicates and normalizes raw customer rows. Missing
// emails get a deterministic placeholder so the email column is never
// null; phones and registration dates fall back to null when not
// recoverable.
func CleanCustomers(raws []Record, rb *ReportBuilder) []Customer {
	kept, dupes, missingKey := dedupe(raws, "customer_id")
	rb.SourceRead("customers", len(raws), dupes)
	if missingKey > 0 {
		rb.MissingKeyDropped("customers", missingKey)
		logging.Warn().
			Int("rows", missingKey).
			Msg("Customers without customer_id dropped")
	}

	customers := make([]Customer, 0, len(kept))
	for _, rec := range kept {
		c := Customer{
			CustomerID: rec.Get("customer_id"),
			FirstName:  rec.Get("first_name"),
			LastName:   rec.Get("last_name"),
			City:       NormalizeCity(rec.Get("city")),
		}

		email, filled := NormalizeEmail(rec.Get("email"), c.CustomerID)
		c.Email = email
		if filled {
			rb.EmailFilled()
		}

		rawPhone := rec.Get("phone")
		c.Phone = NormalizePhone(rawPhone)
		if rawPhone != "" && c.Phone == "" {
			rb.PhoneNulled()
		}

		rawDate := rec.Get("registration_date")
		if date, ok := ParseFlexDate(rawDate); ok {
			c.RegistrationDate = date
		} else if rawDate != "" {
			rb.DateNulled()
		}

		customers = append(customers, c)
	}
	return customers
}

// CleanProducts deduplicates and normalizes raw product rows, then
// backfills missing prices in a second pass: the median of known prices
// in the same category, with the global median as fallback for a
// category with no known prices. Products with no imputable price at all
// are dropped and reported.
func CleanProducts(raws []Record, rb *ReportBuilder) []Product {
	kept, dupes, missingKey := dedupe(raws, "product_id")
	rb.SourceRead("products", len(raws), dupes)
	if missingKey > 0 {
		rb.MissingKeyDropped("products", missingKey)
		logging.Warn().
			Int("rows", missingKey).
			Msg("Products without product_id dropped")
	}

	type parsedProduct struct {
		product  Product
		hasPrice bool
	}

	parsed := make([]parsedProduct, 0, len(kept))
	categoryPrices := make(map[Category][]float64)
	var allPrices []float64

	for _, rec := range kept {
		p := Product{
			ProductID:   rec.Get("product_id"),
			ProductName: rec.Get("product_name"),
			Category:    NormalizeCategory(rec.Get("category")),
		}
		if p.Category == CategoryUnknown {
			rb.CategoryUnmapped()
		}

		price, hasPrice := ParsePrice(rec.Get("price"))
		if hasPrice {
			p.Price = Round2(price)
			allPrices = append(allPrices, p.Price)
			// Unknown is excluded from category medians; its known
			// prices still feed the global median.
			if p.Category != CategoryUnknown {
				categoryPrices[p.Category] = append(categoryPrices[p.Category], p.Price)
			}
		}

		stock, ok := ParseStock(rec.Get("stock_quantity"))
		p.StockQuantity = stock
		if !ok {
			rb.StockDefaulted()
		}

		parsed = append(parsed, parsedProduct{product: p, hasPrice: hasPrice})
	}

	medians := make(map[Category]float64, len(categoryPrices))
	for cat, prices := range categoryPrices {
		if m, ok := Median(prices); ok {
			medians[cat] = m
		}
	}
	globalMedian, haveGlobal := Median(allPrices)

	products := make([]Product, 0, len(parsed))
	for _, pp := range parsed {
		p := pp.product
		if !pp.hasPrice {
			if m, ok := medians[p.Category]; ok {
				p.Price = Round2(m)
			} else if haveGlobal {
				p.Price = Round2(globalMedian)
			} else {
				rb.ProductDropped()
				logging.Warn().
					Str("product_id", p.ProductID).
					Msg("Product dropped: no price and nothing to impute from")
				continue
			}
			rb.PriceImputed()
		}
		products = append(products, p)
	}
	return products
}

// MapSales deduplicates raw sales rows, validates them against the
// cleaned customer and product sets and maps each surviving row to
// exactly one Order and one OrderItem. Surrogate IDs are assigned from a
// monotonic in-run counter starting at 1.
func MapSales(raws []Record, customers []Customer, products []Product, rb *ReportBuilder) ([]Order, []OrderItem) {
	kept, dupes, missingKey := dedupe(raws, "transaction_id")
	rb.SourceRead("sales", len(raws), dupes)
	if missingKey > 0 {
		rb.MissingKeyDropped("sales", missingKey)
		logging.Warn().
			Int("rows", missingKey).
			Msg("Sales without transaction_id dropped")
	}

	customerIDs := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		customerIDs[c.CustomerID] = struct{}{}
	}
	productIDs := make(map[string]struct{}, len(products))
	for _, p := range products {
		productIDs[p.ProductID] = struct{}{}
	}

	orders := make([]Order, 0, len(kept))
	items := make([]OrderItem, 0, len(kept))
	nextID := 1

	for _, rec := range kept {
		customerID := rec.Get("customer_id")
		if customerID == "" {
			rb.SaleDropped(DropMissingCustomer)
			continue
		}
		if _, ok := customerIDs[customerID]; !ok {
			rb.SaleDropped(DropUnknownCustomer)
			continue
		}

		productID := rec.Get("product_id")
		if productID == "" {
			rb.SaleDropped(DropMissingProduct)
			continue
		}
		if _, ok := productIDs[productID]; !ok {
			rb.SaleDropped(DropUnknownProduct)
			continue
		}

		quantity, err := strconv.Atoi(rec.Get("quantity"))
		if err != nil || quantity <= 0 {
			rb.SaleDropped(DropInvalidQuantity)
			continue
		}

		unitPrice, ok := ParsePrice(rec.Get("unit_price"))
		if !ok {
			rb.SaleDropped(DropInvalidPrice)
			continue
		}
		unitPrice = Round2(unitPrice)

		orderDate, ok := ParseFlexDate(rec.Get("transaction_date"))
		if !ok {
			rb.SaleDropped(DropInvalidDate)
			continue
		}

		status := titleCase(rec.Get("status"))
		if status == "" {
			status = "Pending"
		}

		subtotal := Round2(float64(quantity) * unitPrice)

		orders = append(orders, Order{
			OrderID:     nextID,
			CustomerID:  customerID,
			OrderDate:   orderDate,
			TotalAmount: subtotal,
			Status:      status,
		})
		items = append(items, OrderItem{
			OrderItemID: nextID,
			OrderID:     nextID,
			ProductID:   productID,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
		nextID++
	}

	return orders, items
}
