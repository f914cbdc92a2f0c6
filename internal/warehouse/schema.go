//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse seeds the FlexiMart analytical star schema with
// deterministic synthetic data: a date dimension, product and customer
// dimensions and a sales fact table at line-item grain.
package warehouse

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the star schema. Dimension keys are assigned by the
// seeder so runs with the same seed are byte-identical.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS dim_date (
    date_key     INTEGER PRIMARY KEY,
    full_date    DATE NOT NULL,
    day_of_week  VARCHAR(9) NOT NULL,
    day_of_month INTEGER NOT NULL,
    month        INTEGER NOT NULL,
    month_name   VARCHAR(9) NOT NULL,
    quarter      CHAR(2) NOT NULL,
    year         INTEGER NOT NULL,
    is_weekend   BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_product (
    product_key   INTEGER PRIMARY KEY,
    product_id    VARCHAR(10) NOT NULL,
    product_name  VARCHAR(100) NOT NULL,
    category      VARCHAR(50) NOT NULL,
    subcategory   VARCHAR(50) NOT NULL,
    unit_price    NUMERIC(10,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_customer (
    customer_key  INTEGER PRIMARY KEY,
    customer_id   VARCHAR(10) NOT NULL,
    customer_name VARCHAR(100) NOT NULL,
    city          VARCHAR(50) NOT NULL,
    state         VARCHAR(50) NOT NULL,
    segment       VARCHAR(20) NOT NULL
);

CREATE TABLE IF NOT EXISTS fact_sales (
    sales_key       INTEGER PRIMARY KEY,
    date_key        INTEGER NOT NULL REFERENCES dim_date(date_key),
    product_key     INTEGER NOT NULL REFERENCES dim_product(product_key),
    customer_key    INTEGER NOT NULL REFERENCES dim_customer(customer_key),
    quantity        INTEGER NOT NULL,
    unit_price      NUMERIC(10,2) NOT NULL,
    discount_amount NUMERIC(10,2) NOT NULL,
    total_amount    NUMERIC(10,2) NOT NULL
);
`

// CreateSchema creates the star schema tables if they don't exist.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create warehouse schema: %w", err)
	}
	return nil
}

// DropSchema drops the star schema tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
        DROP TABLE IF EXISTS fact_sales, dim_customer, dim_product, dim_date
    `)
	if err != nil {
		return fmt.Errorf("failed to drop warehouse schema: %w", err)
	}
	return nil
}
