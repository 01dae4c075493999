package db

import "testing"

func TestInitSchemaCreatesTables(t *testing.T) {
	db := openTestDB(t)

	exists, err := SchemaExists(db)
	if err != nil {
		t.Fatalf("schema exists: %v", err)
	}
	if exists {
		t.Fatal("expected empty database")
	}

	requireSchema(t, db)

	exists, err = SchemaExists(db)
	if err != nil {
		t.Fatalf("schema exists: %v", err)
	}
	if !exists {
		t.Fatal("expected schema to exist")
	}

	var count int
	row := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name='idx_rpc_profiles_updated'
	`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan index: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected updated_at index, got %d", count)
	}
}

func TestInitSchemaIdempotent(t *testing.T) {
	db := openTestDB(t)
	requireSchema(t, db)
	requireSchema(t, db)
}
