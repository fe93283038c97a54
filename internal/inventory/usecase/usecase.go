package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/fridge-inventory/internal/inventory"
	"github.com/fekuna/fridge-inventory/internal/inventory/dto"
	"github.com/fekuna/fridge-inventory/internal/inventory/listing"
	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger logger.ZapLogger
	now    func() time.Time
	newID  func() string
}

type Option func(*inventoryUseCase)

// WithClock replaces time.Now, which stamps AddedAt and decides "today" for listings.
func WithClock(now func() time.Time) Option {
	return func(uc *inventoryUseCase) { uc.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(uc *inventoryUseCase) { uc.newID = newID }
}

func NewInventoryUseCase(repo inventory.Repository, log logger.ZapLogger, opts ...Option) inventory.UseCase {
	uc := &inventoryUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *inventoryUseCase) AddInventoryItem(ctx context.Context, input *model.NewInventoryItem) (*model.InventoryItem, error) {
	item := &model.InventoryItem{
		ID:         uc.newID(),
		EAN:        input.EAN,
		Name:       input.Name,
		Qty:        input.Qty,
		Unit:       input.Unit,
		ExpiryDate: normalizeExpiry(input.ExpiryDate),
		AddedAt:    uc.now().UTC(),
	}
	if err := validate(item); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("add inventory item: %w", err)
	}
	uc.logger.Info("inventory item added",
		zap.String("id", item.ID),
		zap.String("ean", item.EAN),
		zap.Float64("qty", item.Qty),
		zap.String("unit", string(item.Unit)),
	)
	return item, nil
}

func (uc *inventoryUseCase) UpdateInventoryItem(ctx context.Context, item *model.InventoryItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: missing id", inventory.ErrInvalidItem)
	}
	item.ExpiryDate = normalizeExpiry(item.ExpiryDate)
	if err := validate(item); err != nil {
		return err
	}
	if err := uc.repo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("update inventory item %s: %w", item.ID, err)
	}
	uc.logger.Info("inventory item updated", zap.String("id", item.ID))
	return nil
}

func (uc *inventoryUseCase) DeleteInventoryItem(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete inventory item %s: %w", id, err)
	}
	uc.logger.Info("inventory item consumed", zap.String("id", id))
	return nil
}

func (uc *inventoryUseCase) GetInventoryItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inventory item %s: %w", id, err)
	}
	return item, nil
}

func (uc *inventoryUseCase) GetAllInventoryItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return items, nil
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, filters *dto.ListFilters) ([]listing.Row, error) {
	items, err := uc.GetAllInventoryItems(ctx)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		filters = &dto.ListFilters{}
	}
	return listing.Build(items, listing.Options{
		Search:       filters.Search,
		ExpiringOnly: filters.ExpiringOnly,
		Today:        uc.now(),
	}), nil
}

// normalizeExpiry maps a blank date to "no expiry".
func normalizeExpiry(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validate(item *model.InventoryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", inventory.ErrInvalidItem)
	}
	if item.Qty <= 0 {
		return fmt.Errorf("%w: qty must be positive", inventory.ErrInvalidItem)
	}
	if !item.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %q", inventory.ErrInvalidItem, item.Unit)
	}
	if item.ExpiryDate != nil {
		if _, err := time.Parse(model.DateLayout, *item.ExpiryDate); err != nil {
			return fmt.Errorf("%w: expiry date %q is not YYYY-MM-DD", inventory.ErrInvalidItem, *item.ExpiryDate)
		}
	}
	return nil
}
