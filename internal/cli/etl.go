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

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-etl/internal/db"
	"github.com/fleximart/fleximart-etl/internal/etl"
	"github.com/fleximart/fleximart-etl/internal/logging"
)

var (
	etlDataDir       string
	etlCustomersFile string
	etlProductsFile  string
	etlSalesFile     string
	etlReportFile    string
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Run the ETL pipeline: raw CSVs into the normalized schema",
	Long: `Run the FlexiMart ETL pipeline. Reads the raw customers, products and
sales CSV files, cleans them, maps sales transactions to orders and
order items, replaces the target tables and writes a data quality
report.

The load is transactional and idempotent: re-running with the same raw
input yields the same final table contents, and a failed run leaves the
previous state untouched.

Example:
  fleximart-etl etl --connection "postgres://..." --data-dir ./data`,
	RunE: runEtl,
}

func init() {
	etlCmd.Flags().StringVar(&etlDataDir, "data-dir", "",
		"directory containing the raw CSV files")
	etlCmd.Flags().StringVar(&etlCustomersFile, "customers-file", "",
		"raw customers CSV file name")
	etlCmd.Flags().StringVar(&etlProductsFile, "products-file", "",
		"raw products CSV file name")
	etlCmd.Flags().StringVar(&etlSalesFile, "sales-file", "",
		"raw sales CSV file name")
	etlCmd.Flags().StringVar(&etlReportFile, "report-file", "",
		"data quality report output path (empty to skip)")
}

func runEtl(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if etlDataDir != "" {
		cfg.Etl.DataDir = etlDataDir
	}
	if etlCustomersFile != "" {
		cfg.Etl.CustomersFile = etlCustomersFile
	}
	if etlProductsFile != "" {
		cfg.Etl.ProductsFile = etlProductsFile
	}
	if etlSalesFile != "" {
		cfg.Etl.SalesFile = etlSalesFile
	}
	if cmd.Flags().Changed("report-file") {
		cfg.Etl.ReportFile = etlReportFile
	}

	if err := cfg.ValidateEtl(); err != nil {
		return err
	}

	logging.Info().
		Str("data_dir", cfg.Etl.DataDir).
		Msg("Starting ETL pipeline")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	pipeline := etl.NewPipeline(etl.NewPostgresStore(pool), etl.Sources{
		CustomersPath: cfg.Etl.CustomersPath(),
		ProductsPath:  cfg.Etl.ProductsPath(),
		SalesPath:     cfg.Etl.SalesPath(),
	})

	report, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if err := db.SaveRunMetadata(ctx, pool, "etl", report.Loaded); err != nil {
		return fmt.Errorf("failed to save run metadata: %w", err)
	}

	if cfg.Etl.ReportFile != "" {
		if err := etl.WriteReport(report, cfg.Etl.ReportFile); err != nil {
			return err
		}
	}

	logging.Info().
		Int("customers", report.Loaded["customers"]).
		Int("products", report.Loaded["products"]).
		Int("orders", report.Loaded["orders"]).
		Int("order_items", report.Loaded["order_items"]).
		Int("sales_dropped", report.TotalSaleDrops()).
		Msg("ETL pipeline complete")

	return nil
}
