package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/fekuna/fridge-inventory/pkg/database/sqlite"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sqlite.NewSQLite(context.Background(), &sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func strPtr(s string) *string { return &s }

func sample(id string) *model.InventoryItem {
	return &model.InventoryItem{
		ID:         id,
		EAN:        "5901234123457",
		Name:       "Milk",
		Qty:        1,
		Unit:       model.UnitLiter,
		ExpiryDate: strPtr("2024-06-01"),
		AddedAt:    time.Date(2024, 5, 20, 8, 15, 30, 123456789, time.UTC),
	}
}

func TestCreateAndFindByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	item := sample("a")
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, item.AddedAt.Equal(got.AddedAt), "added_at %v != %v", item.AddedAt, got.AddedAt)
	got.AddedAt = item.AddedAt
	require.Equal(t, item, got)
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sample("a")))
	require.Error(t, repo.Create(ctx, sample("a")))
}

func TestNullExpiryRoundTrips(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	item := sample("b")
	item.ExpiryDate = nil
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.FindByID(ctx, "b")
	require.NoError(t, err)
	require.Nil(t, got.ExpiryDate)
}

func TestUpsertReplacesWholeRecord(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	item := sample("a")
	require.NoError(t, repo.Create(ctx, item))

	updated := *item
	updated.Qty = 3
	updated.ExpiryDate = nil
	require.NoError(t, repo.Upsert(ctx, &updated))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 3.0, got.Qty)
	require.Nil(t, got.ExpiryDate)
	require.True(t, item.AddedAt.Equal(got.AddedAt))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpsertInsertsUnknownID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sample("new")))
	got, err := repo.FindByID(ctx, "new")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sample("a")))
	require.NoError(t, repo.Create(ctx, sample("b")))

	require.NoError(t, repo.Delete(ctx, "missing"))
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"))
	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFindAllEmpty(t *testing.T) {
	repo := newRepo(t)
	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}
