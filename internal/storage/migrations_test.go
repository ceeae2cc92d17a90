package storage

import (
	"context"
	"testing"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store := createTestStore(t)

	version, err := store.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, ExpectedSchemaVersion)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyRecords, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyRecords); !ok {
		t.Error("data lost after re-running migrations")
	}
}

func TestMigration2_BackfillsUpdatedAt(t *testing.T) {
	store, err := NewSQLiteStore(MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	// Apply only the first migration and insert a row the old way.
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if err := migrations[0].Up(tx); err != nil {
		t.Fatalf("migration 1: %v", err)
	}
	if _, err := tx.Exec("PRAGMA user_version = 1"); err != nil {
		t.Fatalf("set version: %v", err)
	}
	if _, err := tx.Exec(`INSERT INTO kv_entries (key, value) VALUES ('expense_budget', '{"amount":0}')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var missing int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM kv_entries WHERE updated_at IS NULL`).Scan(&missing); err != nil {
		t.Fatalf("query: %v", err)
	}
	if missing != 0 {
		t.Errorf("%d rows without updated_at after migration", missing)
	}
}
