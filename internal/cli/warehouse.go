//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-etl/internal/db"
	"github.com/fleximart/fleximart-etl/internal/logging"
	"github.com/fleximart/fleximart-etl/internal/warehouse"
)

var (
	warehouseSeed      uint64
	warehouseStartDate string
	warehouseDays      int
	warehouseFacts     int
	warehouseDrop      bool
)

var warehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Seed the analytical star schema with deterministic data",
	Long: `Seed the FlexiMart star schema (dim_date, dim_product, dim_customer,
fact_sales) with synthetic data. Generation is seeded: the same seed
always produces the same rows, so the warehouse can be rebuilt
reproducibly.

Example:
  fleximart-etl warehouse --connection "postgres://..." --seed 42 --facts 40`,
	RunE: runWarehouse,
}

func init() {
	warehouseCmd.Flags().Uint64Var(&warehouseSeed, "seed", 0,
		"PRNG seed (identical seeds produce identical data)")
	warehouseCmd.Flags().StringVar(&warehouseStartDate, "start-date", "",
		"first date in dim_date (YYYY-MM-DD)")
	warehouseCmd.Flags().IntVar(&warehouseDays, "days", 0,
		"number of consecutive dates in dim_date")
	warehouseCmd.Flags().IntVar(&warehouseFacts, "facts", 0,
		"number of fact_sales rows to generate")
	warehouseCmd.Flags().BoolVar(&warehouseDrop, "drop-existing", false,
		"drop the star schema before seeding")
}

func runWarehouse(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if cmd.Flags().Changed("seed") {
		cfg.Warehouse.Seed = warehouseSeed
	}
	if warehouseStartDate != "" {
		cfg.Warehouse.StartDate = warehouseStartDate
	}
	if warehouseDays > 0 {
		cfg.Warehouse.Days = warehouseDays
	}
	if warehouseFacts > 0 {
		cfg.Warehouse.Facts = warehouseFacts
	}

	if err := cfg.ValidateWarehouse(); err != nil {
		return err
	}

	startDate, err := time.Parse("2006-01-02", cfg.Warehouse.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	logging.Info().
		Uint64("seed", cfg.Warehouse.Seed).
		Str("start_date", cfg.Warehouse.StartDate).
		Int("days", cfg.Warehouse.Days).
		Int("facts", cfg.Warehouse.Facts).
		Msg("Seeding warehouse")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if warehouseDrop {
		logging.Info().Msg("Dropping existing star schema")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return err
		}
	}

	ds, err := warehouse.Seed(ctx, pool, warehouse.Config{
		Seed:      cfg.Warehouse.Seed,
		StartDate: startDate,
		Days:      cfg.Warehouse.Days,
		Facts:     cfg.Warehouse.Facts,
	})
	if err != nil {
		return fmt.Errorf("failed to seed warehouse: %w", err)
	}

	cmd.Printf("Seeded star schema: %d dates, %d products, %d customers, %d facts\n",
		len(ds.Dates), len(ds.Products), len(ds.Customers), len(ds.Facts))

	return nil
}
