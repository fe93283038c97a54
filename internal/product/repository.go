package product

import (
	"context"

	"github.com/fekuna/fridge-inventory/internal/model"
)

type Repository interface {
	// FindByEAN returns nil, nil when no catalog entry exists for the code.
	FindByEAN(ctx context.Context, ean string) (*model.Product, error)
	// Upsert overwrites any entry stored under the same EAN.
	Upsert(ctx context.Context, product *model.Product) error
}
