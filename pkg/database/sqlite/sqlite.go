package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	// Path is a file path, ":memory:", or a full "file:" URI.
	Path        string
	BusyTimeout time.Duration
}

// NewSQLite opens the database, checks it is reachable and applies the schema.
// The pool is pinned to a single connection: SQLite serializes writers anyway,
// and an in-memory database only lives as long as its connection.
func NewSQLite(ctx context.Context, cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func dsn(cfg *Config) string {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	if cfg.BusyTimeout > 0 {
		params.Set("_busy_timeout", fmt.Sprint(cfg.BusyTimeout.Milliseconds()))
	}
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + params.Encode()
	}
	return "file:" + path + "?" + params.Encode()
}
