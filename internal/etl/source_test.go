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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestReadSourceParsesRows(t *testing.T) {
	path := writeCSV(t, "customers.csv", strings.Join([]string{
		"customer_id,first_name,last_name,email,phone,city,registration_date",
		"C001, Rahul ,Sharma,rahul@example.com,9876543210,bangalore,2024-01-15",
		"C002,Priya,Patel,,,mumbai,",
	}, "\n"))

	records, err := ReadCustomers(path)
	if err != nil {
		t.Fatalf("ReadCustomers failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := records[0].Get("first_name"); got != "Rahul" {
		t.Errorf("first_name = %q, want whitespace-normalized Rahul", got)
	}
	if got := records[1].Get("email"); got != "" {
		t.Errorf("missing email = %q, want empty string", got)
	}
}

func TestReadSourceMissingColumn(t *testing.T) {
	path := writeCSV(t, "products.csv", strings.Join([]string{
		"product_id,product_name,price,stock_quantity",
		"P001,Widget,100,5",
	}, "\n"))

	_, err := ReadProducts(path)
	if err == nil {
		t.Fatal("expected error for missing category column")
	}
	if !strings.Contains(err.Error(), "category") {
		t.Errorf("error should name the missing column, got: %v", err)
	}
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := ReadSales(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadSourceMalformedRow(t *testing.T) {
	path := writeCSV(t, "sales.csv", strings.Join([]string{
		"transaction_id,customer_id,product_id,quantity,unit_price,transaction_date",
		`T1,"unterminated,1,1,10,2024-01-15`,
	}, "\n"))

	_, err := ReadSales(path)
	if err == nil {
		t.Fatal("expected error for malformed CSV row")
	}
}

func TestReadSalesStatusOptional(t *testing.T) {
	path := writeCSV(t, "sales.csv", strings.Join([]string{
		"transaction_id,customer_id,product_id,quantity,unit_price,transaction_date,status",
		"T1,C001,P001,2,50,2024-01-15,delivered",
	}, "\n"))

	records, err := ReadSales(path)
	if err != nil {
		t.Fatalf("ReadSales failed: %v", err)
	}
	if got := records[0].Get("status"); got != "delivered" {
		t.Errorf("status = %q, want delivered", got)
	}
}
