package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/fridge-inventory/internal/entry"
	"github.com/fekuna/fridge-inventory/internal/entry/dto"
	"github.com/fekuna/fridge-inventory/internal/inventory"
	invRepo "github.com/fekuna/fridge-inventory/internal/inventory/repository"
	invUC "github.com/fekuna/fridge-inventory/internal/inventory/usecase"
	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/fekuna/fridge-inventory/internal/product"
	prodRepo "github.com/fekuna/fridge-inventory/internal/product/repository"
	prodUC "github.com/fekuna/fridge-inventory/internal/product/usecase"
	"github.com/fekuna/fridge-inventory/pkg/database/sqlite"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	uc       entry.UseCase
	items    inventory.UseCase
	products product.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.NewSQLite(context.Background(), &sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewNop()
	items := invUC.NewInventoryUseCase(invRepo.NewSQLiteRepository(db), log,
		invUC.WithClock(func() time.Time { return fixedNow }))
	products := prodUC.NewProductUseCase(prodRepo.NewSQLiteRepository(db), nil, 0, log)
	return &fixture{
		uc:       NewEntryUseCase(items, products, log, WithClock(func() time.Time { return fixedNow })),
		items:    items,
		products: products,
	}
}

func TestManualEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	form, err := f.uc.LoadForCode(ctx, dto.ManualCode)
	require.NoError(t, err)
	require.Equal(t, &dto.Form{Mode: dto.ModeAdd, Code: dto.ManualCode, Qty: 1, Unit: model.UnitCount}, form)

	form.Apply(&dto.FormInput{Name: "Eggs", Qty: 12, Unit: model.UnitCount})
	item, err := f.uc.Submit(ctx, form)
	require.NoError(t, err)
	require.Equal(t, "manual-1710063000000", item.EAN)
	require.True(t, item.IsManual())

	rows, err := f.items.ListItems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Eggs", rows[0].Name)
	require.Equal(t, 12.0, rows[0].Qty)
	require.Equal(t, model.UnitCount, rows[0].Unit)
	require.Nil(t, rows[0].Badge)

	// manual entries are never remembered in the catalog
	p, err := f.products.GetProduct(ctx, item.EAN)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestScannedCodeIsRememberedForNextScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const code = "5901234123457"

	form, err := f.uc.LoadForCode(ctx, code)
	require.NoError(t, err)
	require.Equal(t, &dto.Form{Mode: dto.ModeAdd, Code: code, Qty: 1, Unit: model.UnitCount}, form)

	form.Apply(&dto.FormInput{Name: "Butter", Qty: 250, Unit: model.UnitGrams, ExpiryDate: "2024-04-01"})
	item, err := f.uc.Submit(ctx, form)
	require.NoError(t, err)
	require.Equal(t, code, item.EAN)
	require.Equal(t, "2024-04-01", *item.ExpiryDate)

	p, err := f.products.GetProduct(ctx, code)
	require.NoError(t, err)
	require.Equal(t, &model.Product{EAN: code, Name: "Butter", DefaultQty: 250, DefaultUnit: model.UnitGrams}, p)

	again, err := f.uc.LoadForCode(ctx, code)
	require.NoError(t, err)
	require.Equal(t, "Butter", again.Name)
	require.Equal(t, 250.0, again.Qty)
	require.Equal(t, model.UnitGrams, again.Unit)
	require.Empty(t, again.ExpiryDate)
}

func TestEditKeepsIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expiry := "2024-03-20"
	original, err := f.items.AddInventoryItem(ctx, &model.NewInventoryItem{
		EAN: "4006381333931", Name: "Cream", Qty: 1, Unit: model.UnitCount, ExpiryDate: &expiry,
	})
	require.NoError(t, err)
	other, err := f.items.AddInventoryItem(ctx, &model.NewInventoryItem{EAN: "1", Name: "Jam", Qty: 1, Unit: model.UnitCount})
	require.NoError(t, err)

	form, err := f.uc.LoadForEdit(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, dto.ModeEdit, form.Mode)
	require.Equal(t, "2024-03-20", form.ExpiryDate)

	form.Qty = 3
	form.ExpiryDate = ""
	updated, err := f.uc.Submit(ctx, form)
	require.NoError(t, err)
	require.Equal(t, original.ID, updated.ID)

	got, err := f.items.GetInventoryItem(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, 3.0, got.Qty)
	require.Nil(t, got.ExpiryDate)
	require.Equal(t, original.EAN, got.EAN)
	require.True(t, original.AddedAt.Equal(got.AddedAt))

	untouched, err := f.items.GetInventoryItem(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, 1.0, untouched.Qty)

	// edits never touch the catalog
	p, err := f.products.GetProduct(ctx, original.EAN)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestEditMissingItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.LoadForEdit(ctx, "gone")
	require.ErrorIs(t, err, entry.ErrItemNotFound)

	_, err = f.uc.Submit(ctx, &dto.Form{Mode: dto.ModeEdit, ID: "gone", Name: "x", Qty: 1, Unit: model.UnitCount})
	require.ErrorIs(t, err, entry.ErrItemNotFound)
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Submit(ctx, &dto.Form{Code: dto.ManualCode, Name: "   ", Qty: 0, Unit: "box", ExpiryDate: "2024-13-40"})
	require.ErrorIs(t, err, entry.ErrInvalidInput)

	var verr *entry.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, map[string]string{
		"name":       "is required",
		"qty":        "must be greater than zero",
		"unit":       "must be one of buc, g, kg, ml, l",
		"expiryDate": "must be a date in YYYY-MM-DD format",
	}, verr.Violations)
	require.True(t, strings.HasPrefix(err.Error(), "invalid input: expiryDate, name"))

	all, err := f.items.GetAllInventoryItems(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

type failingCatalog struct{}

func (failingCatalog) GetProduct(context.Context, string) (*model.Product, error) {
	return nil, errors.New("catalog down")
}
func (failingCatalog) SaveProduct(context.Context, *model.Product) error {
	return errors.New("catalog down")
}

func TestCatalogFailure(t *testing.T) {
	f := newFixture(t)
	uc := NewEntryUseCase(f.items, failingCatalog{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.LoadForCode(ctx, "123")
	require.Error(t, err)

	// the item is kept even when its defaults cannot be remembered
	item, err := uc.Submit(ctx, &dto.Form{Code: "123", Name: "Kefir", Qty: 1, Unit: model.UnitLiter})
	require.NoError(t, err)
	got, err := f.items.GetInventoryItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}
