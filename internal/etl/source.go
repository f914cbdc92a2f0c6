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
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Expected columns per source file. A missing required column is a
// structural failure and aborts the run.
var (
	customerColumns = []string{
		"customer_id", "first_name", "last_name", "email",
		"phone", "city", "registration_date",
	}
	productColumns = []string{
		"product_id", "product_name", "category", "price", "stock_quantity",
	}
	salesColumns = []string{
		"transaction_id", "customer_id", "product_id",
		"quantity", "unit_price", "transaction_date",
	}
)

// ReadSource parses a CSV file with a header row into records keyed by
// column name. All values are whitespace-normalized. Returns an error if
// the file is unreadable or any required column is absent from the
// header.
func ReadSource(path string, required []string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	records, err := readSource(f, required)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func readSource(r io.Reader, required []string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = NormalizeSpaces(header[i])
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed row: %w", err)
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = NormalizeSpaces(row[i])
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// ReadCustomers loads the raw customers file.
func ReadCustomers(path string) ([]Record, error) {
	return ReadSource(path, customerColumns)
}

// ReadProducts loads the raw products file.
func ReadProducts(path string) ([]Record, error) {
	return ReadSource(path, productColumns)
}

// ReadSales loads the raw sales file. The optional status column is not
// required; rows without it default to Pending during mapping.
func ReadSales(path string) ([]Record, error) {
	return ReadSource(path, salesColumns)
}
