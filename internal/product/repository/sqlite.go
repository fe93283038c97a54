package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) FindByEAN(ctx context.Context, ean string) (*model.Product, error) {
	var p model.Product
	query := `SELECT ean, name, default_qty, default_unit FROM products WHERE ean = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, ean)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (ean, name, default_qty, default_unit)
        VALUES (:ean, :name, :default_qty, :default_unit)
        ON CONFLICT (ean) DO UPDATE SET
            name = excluded.name,
            default_qty = excluded.default_qty,
            default_unit = excluded.default_unit
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}
