package product

import (
	"context"

	"github.com/fekuna/fridge-inventory/internal/model"
)

type UseCase interface {
	GetProduct(ctx context.Context, ean string) (*model.Product, error)
	SaveProduct(ctx context.Context, product *model.Product) error
}
