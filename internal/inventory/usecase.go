package inventory

import (
	"context"

	"github.com/fekuna/fridge-inventory/internal/inventory/dto"
	"github.com/fekuna/fridge-inventory/internal/inventory/listing"
	"github.com/fekuna/fridge-inventory/internal/model"
)

type UseCase interface {
	AddInventoryItem(ctx context.Context, input *model.NewInventoryItem) (*model.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item *model.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id string) error
	GetInventoryItem(ctx context.Context, id string) (*model.InventoryItem, error)
	GetAllInventoryItems(ctx context.Context) ([]model.InventoryItem, error)

	// ListItems returns the display list: filtered, ordered and labelled.
	ListItems(ctx context.Context, filters *dto.ListFilters) ([]listing.Row, error)
}
