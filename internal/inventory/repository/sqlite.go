package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/jmoiron/sqlx"
)

const itemColumns = `id, ean, name, qty, unit, expiry_date, added_at`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory (` + itemColumns + `)
        VALUES (:id, :ean, :name, :qty, :unit, :expiry_date, :added_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *SQLiteRepository) Upsert(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory (` + itemColumns + `)
        VALUES (:id, :ean, :name, :qty, :unit, :expiry_date, :added_at)
        ON CONFLICT (id) DO UPDATE SET
            ean = excluded.ean,
            name = excluded.name,
            qty = excluded.qty,
            unit = excluded.unit,
            expiry_date = excluded.expiry_date,
            added_at = excluded.added_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := `SELECT ` + itemColumns + ` FROM inventory WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	query := `SELECT ` + itemColumns + ` FROM inventory`
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}
