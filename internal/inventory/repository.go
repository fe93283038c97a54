package inventory

import (
	"context"

	"github.com/fekuna/fridge-inventory/internal/model"
)

type Repository interface {
	// Create inserts a new record; an existing id is an error.
	Create(ctx context.Context, item *model.InventoryItem) error
	// Upsert writes the complete record under its id. Last writer wins.
	Upsert(ctx context.Context, item *model.InventoryItem) error
	// Delete removes the record. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
	// FindByID returns nil, nil when the id is unknown.
	FindByID(ctx context.Context, id string) (*model.InventoryItem, error)
	// FindAll returns every record in no particular order.
	FindAll(ctx context.Context) ([]model.InventoryItem, error)
}
