//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for fleximart-etl.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for fleximart-etl.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Etl holds configuration for the etl subcommand.
	Etl EtlConfig `mapstructure:"etl"`

	// Warehouse holds configuration for the warehouse subcommand.
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
}

// EtlConfig holds configuration for the ETL pipeline.
type EtlConfig struct {
	// DataDir is the directory containing the raw CSV files.
	DataDir string `mapstructure:"data_dir"`

	// CustomersFile is the raw customers CSV file name, relative to DataDir.
	CustomersFile string `mapstructure:"customers_file"`

	// ProductsFile is the raw products CSV file name, relative to DataDir.
	ProductsFile string `mapstructure:"products_file"`

	// SalesFile is the raw sales CSV file name, relative to DataDir.
	SalesFile string `mapstructure:"sales_file"`

	// ReportFile is where the data quality report is written.
	// An empty value disables the report artifact.
	ReportFile string `mapstructure:"report_file"`
}

// WarehouseConfig holds configuration for the warehouse seeder.
type WarehouseConfig struct {
	// Seed is the PRNG seed; identical seeds produce identical data.
	Seed uint64 `mapstructure:"seed"`

	// StartDate is the first date in dim_date (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// Days is the number of consecutive dates in dim_date.
	Days int `mapstructure:"days"`

	// Facts is the number of rows generated in fact_sales.
	Facts int `mapstructure:"facts"`
}

// CustomersPath returns the full path to the raw customers file.
func (e EtlConfig) CustomersPath() string {
	return filepath.Join(e.DataDir, e.CustomersFile)
}

// ProductsPath returns the full path to the raw products file.
func (e EtlConfig) ProductsPath() string {
	return filepath.Join(e.DataDir, e.ProductsFile)
}

// SalesPath returns the full path to the raw sales file.
func (e EtlConfig) SalesPath() string {
	return filepath.Join(e.DataDir, e.SalesFile)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Etl: EtlConfig{
			DataDir:       "data",
			CustomersFile: "customers_raw.csv",
			ProductsFile:  "products_raw.csv",
			SalesFile:     "sales_raw.csv",
			ReportFile:    "data_quality_report.txt",
		},
		Warehouse: WarehouseConfig{
			Seed:      42,
			StartDate: "2024-01-15",
			Days:      30,
			Facts:     40,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./fleximart-etl.yaml
// 3. ~/.config/fleximart-etl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("fleximart-etl")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "fleximart-etl"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateEtl checks configuration required for the etl command.
func (c *Config) ValidateEtl() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Etl.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.Etl.CustomersFile == "" || c.Etl.ProductsFile == "" || c.Etl.SalesFile == "" {
		return fmt.Errorf("customers, products and sales file names are required")
	}
	return nil
}

// ValidateWarehouse checks configuration required for the warehouse command.
func (c *Config) ValidateWarehouse() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Warehouse.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	if c.Warehouse.Facts < 1 {
		return fmt.Errorf("facts must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", c.Warehouse.StartDate); err != nil {
		return fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", c.Warehouse.StartDate)
	}
	return nil
}
