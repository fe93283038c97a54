package entry

import (
	"context"

	"github.com/fekuna/fridge-inventory/internal/entry/dto"
	"github.com/fekuna/fridge-inventory/internal/model"
)

type UseCase interface {
	// LoadForCode prefills the confirm form for a scanned code or dto.ManualCode.
	LoadForCode(ctx context.Context, code string) (*dto.Form, error)
	// LoadForEdit prefills the form from a stored item.
	LoadForEdit(ctx context.Context, id string) (*dto.Form, error)
	// Submit validates the form and writes it. A form with an ID edits that item,
	// otherwise a new item is added.
	Submit(ctx context.Context, form *dto.Form) (*model.InventoryItem, error)
}
