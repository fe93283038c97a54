package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/fridge-inventory/internal/entry"
	"github.com/fekuna/fridge-inventory/internal/entry/dto"
	"github.com/fekuna/fridge-inventory/internal/inventory"
	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/fekuna/fridge-inventory/internal/product"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type entryUseCase struct {
	items     inventory.UseCase
	products  product.UseCase
	validator *validator.Validate
	logger    logger.ZapLogger
	now       func() time.Time
}

type Option func(*entryUseCase)

// WithClock replaces time.Now, which is used for manual EAN tokens.
func WithClock(now func() time.Time) Option {
	return func(uc *entryUseCase) { uc.now = now }
}

func NewEntryUseCase(items inventory.UseCase, products product.UseCase, log logger.ZapLogger, opts ...Option) entry.UseCase {
	uc := &entryUseCase{
		items:     items,
		products:  products,
		validator: newValidator(),
		logger:    log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *entryUseCase) LoadForCode(ctx context.Context, code string) (*dto.Form, error) {
	form := dto.NewBlankForm(code)
	if form.IsManual() {
		form.Code = dto.ManualCode
		return form, nil
	}

	p, err := uc.products.GetProduct(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", code, err)
	}
	if p != nil {
		form.Name = p.Name
		form.Qty = p.DefaultQty
		form.Unit = p.DefaultUnit
	}
	return form, nil
}

func (uc *entryUseCase) LoadForEdit(ctx context.Context, id string) (*dto.Form, error) {
	item, err := uc.items.GetInventoryItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", entry.ErrItemNotFound, id)
	}

	form := &dto.Form{
		Mode: dto.ModeEdit,
		ID:   item.ID,
		Code: item.EAN,
		Name: item.Name,
		Qty:  item.Qty,
		Unit: item.Unit,
	}
	if item.ExpiryDate != nil {
		form.ExpiryDate = *item.ExpiryDate
	}
	return form, nil
}

func (uc *entryUseCase) Submit(ctx context.Context, form *dto.Form) (*model.InventoryItem, error) {
	if err := checkForm(uc.validator, form); err != nil {
		return nil, err
	}
	if form.ID != "" {
		return uc.edit(ctx, form)
	}
	return uc.add(ctx, form)
}

func (uc *entryUseCase) edit(ctx context.Context, form *dto.Form) (*model.InventoryItem, error) {
	existing, err := uc.items.GetInventoryItem(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", entry.ErrItemNotFound, form.ID)
	}

	existing.Name = form.Name
	existing.Qty = form.Qty
	existing.Unit = form.Unit
	existing.ExpiryDate = expiryPtr(form.ExpiryDate)
	if err := uc.items.UpdateInventoryItem(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *entryUseCase) add(ctx context.Context, form *dto.Form) (*model.InventoryItem, error) {
	manual := form.IsManual()
	ean := form.Code
	if manual {
		ean = model.ManualEANPrefix + strconv.FormatInt(uc.now().UnixMilli(), 10)
	}

	item, err := uc.items.AddInventoryItem(ctx, &model.NewInventoryItem{
		EAN:        ean,
		Name:       form.Name,
		Qty:        form.Qty,
		Unit:       form.Unit,
		ExpiryDate: expiryPtr(form.ExpiryDate),
	})
	if err != nil {
		return nil, err
	}
	if manual {
		return item, nil
	}

	// The catalog only speeds up the next scan; the item is already stored.
	if err := uc.products.SaveProduct(ctx, &model.Product{
		EAN:         ean,
		Name:        form.Name,
		DefaultQty:  form.Qty,
		DefaultUnit: form.Unit,
	}); err != nil {
		uc.logger.Warn("remember product defaults failed", zap.String("ean", ean), zap.Error(err))
	}
	return item, nil
}

func expiryPtr(d string) *string {
	if d == "" {
		return nil
	}
	return &d
}
