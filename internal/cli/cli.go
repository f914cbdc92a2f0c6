//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for fleximart-etl.
package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-etl/internal/config"
	"github.com/fleximart/fleximart-etl/internal/db"
	"github.com/fleximart/fleximart-etl/internal/logging"
	"github.com/fleximart/fleximart-etl/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "fleximart-etl",
		Short: "FlexiMart retail data pipeline",
		Long: `fleximart-etl loads the FlexiMart raw retail CSV extracts (customers,
products, sales) into a normalized PostgreSQL schema, cleaning data
quality issues along the way and producing a data quality report.

It can also seed the FlexiMart analytical star schema (dim_date,
dim_product, dim_customer, fact_sales) with deterministic synthetic
data for warehouse exercises.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./fleximart-etl.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(etlCmd)
	rootCmd.AddCommand(warehouseCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last pipeline run and current table counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := context.Background()
		pool, err := db.Connect(ctx, cfg.Connection)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		exists, err := db.MetadataExists(ctx, pool)
		if err != nil {
			return fmt.Errorf("failed to check metadata: %w", err)
		}
		if !exists {
			return fmt.Errorf("no pipeline run recorded; run 'fleximart-etl etl' first")
		}

		metadata, err := db.GetAllMetadata(ctx, pool)
		if err != nil {
			return fmt.Errorf("failed to read metadata: %w", err)
		}

		keys := make([]string, 0, len(metadata))
		for key := range metadata {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		cmd.Println("Last pipeline run:")
		for _, key := range keys {
			cmd.Printf("  %s: %s\n", key, metadata[key])
		}

		cmd.Println()
		cmd.Println("Current table counts:")
		for _, table := range []string{"customers", "products", "orders", "order_items"} {
			var count int64
			err := pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&count)
			if err != nil {
				cmd.Printf("  %s: unavailable (%v)\n", table, err)
				continue
			}
			cmd.Printf("  %s: %d\n", table, count)
		}

		return nil
	},
}
