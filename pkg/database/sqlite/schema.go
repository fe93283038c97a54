package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SchemaVersion is stored in PRAGMA user_version once the tables exist.
const SchemaVersion = 1

var schemaV1 = []string{
	`CREATE TABLE IF NOT EXISTS products (
        ean          TEXT PRIMARY KEY,
        name         TEXT NOT NULL,
        default_qty  REAL NOT NULL,
        default_unit TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS inventory (
        id          TEXT PRIMARY KEY,
        ean         TEXT NOT NULL,
        name        TEXT NOT NULL,
        qty         REAL NOT NULL,
        unit        TEXT NOT NULL,
        expiry_date TEXT NULL,
        added_at    TIMESTAMP NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_expiry ON inventory (expiry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_added ON inventory (added_at)`,
}

// Migrate creates the products and inventory tables on a fresh database and is a
// no-op on every later open.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	version, err := UserVersion(ctx, db)
	if err != nil {
		return err
	}
	if version >= SchemaVersion {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaV1 {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return tx.Commit()
}

func UserVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	var version int
	if err := db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
