//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"testing"

	"github.com/fleximart/fleximart-etl/internal/testutil"
)

func TestRunMetadataRoundTrip(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)
	connStr := testutil.CreateTestDB(t, baseConnStr, "metadata")
	dbName := testutil.GetDBNameFromConnStr(connStr)
	defer testutil.DropTestDB(t, baseConnStr, dbName)

	pool := testutil.ConnectTestDB(t, connStr)
	defer pool.Close()

	ctx := context.Background()

	exists, err := MetadataExists(ctx, pool)
	if err != nil {
		t.Fatalf("MetadataExists failed: %v", err)
	}
	if exists {
		t.Fatal("metadata table should not exist before first save")
	}

	loaded := map[string]int{"customers": 9, "orders": 11}
	if err := SaveRunMetadata(ctx, pool, "etl", loaded); err != nil {
		t.Fatalf("SaveRunMetadata failed: %v", err)
	}

	pipeline, err := GetMetadataValue(ctx, pool, "pipeline")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if pipeline != "etl" {
		t.Errorf("pipeline = %q, want etl", pipeline)
	}

	all, err := GetAllMetadata(ctx, pool)
	if err != nil {
		t.Fatalf("GetAllMetadata failed: %v", err)
	}
	if all["loaded_customers"] != "9" || all["loaded_orders"] != "11" {
		t.Errorf("loaded counts = %v", all)
	}
	if all["finished_at"] == "" {
		t.Error("finished_at should be recorded")
	}

	// Saving again upserts rather than duplicating.
	if err := SaveRunMetadata(ctx, pool, "etl", map[string]int{"customers": 12}); err != nil {
		t.Fatalf("second SaveRunMetadata failed: %v", err)
	}
	value, err := GetMetadataValue(ctx, pool, "loaded_customers")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if value != "12" {
		t.Errorf("loaded_customers = %q, want 12 after upsert", value)
	}

	if err := DropMetadata(ctx, pool); err != nil {
		t.Fatalf("DropMetadata failed: %v", err)
	}
	exists, err = MetadataExists(ctx, pool)
	if err != nil {
		t.Fatalf("MetadataExists failed: %v", err)
	}
	if exists {
		t.Error("metadata table should be gone after drop")
	}
}
