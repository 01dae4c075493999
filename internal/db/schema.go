package db

import "database/sql"

const schemaSQL = `
-- Saved rich presence profiles
CREATE TABLE IF NOT EXISTS rpc_profiles (
  name TEXT PRIMARY KEY,               -- user-chosen profile name
  data TEXT NOT NULL,                  -- JSON-encoded presence config
  created_at INTEGER NOT NULL,         -- unix timestamp
  updated_at INTEGER NOT NULL          -- unix timestamp of last save
);

CREATE INDEX IF NOT EXISTS idx_rpc_profiles_updated ON rpc_profiles(updated_at);
`

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// InitSchema creates missing tables.
func InitSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(schemaSQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SchemaExists reports whether the profile table is present.
func SchemaExists(db DBTX) (bool, error) {
	row := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='rpc_profiles'
	`)
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name != "", nil
}
