package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/fridge-inventory/internal/entry/dto"
	"github.com/fekuna/fridge-inventory/internal/entry/usecase"
	"github.com/fekuna/fridge-inventory/internal/inventory"
	invRepo "github.com/fekuna/fridge-inventory/internal/inventory/repository"
	invUC "github.com/fekuna/fridge-inventory/internal/inventory/usecase"
	"github.com/fekuna/fridge-inventory/internal/model"
	prodRepo "github.com/fekuna/fridge-inventory/internal/product/repository"
	prodUC "github.com/fekuna/fridge-inventory/internal/product/usecase"
	"github.com/fekuna/fridge-inventory/pkg/database/sqlite"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (http.Handler, inventory.UseCase) {
	t.Helper()
	db, err := sqlite.NewSQLite(context.Background(), &sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewNop()
	items := invUC.NewInventoryUseCase(invRepo.NewSQLiteRepository(db), log)
	products := prodUC.NewProductUseCase(prodRepo.NewSQLiteRepository(db), nil, 0, log)

	r := chi.NewRouter()
	NewEntryHandler(usecase.NewEntryUseCase(items, products, log), log).MountRoutes(r)
	return r, items
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	return w
}

func TestConfirmFlow(t *testing.T) {
	h, _ := setup(t)

	w := do(h, http.MethodGet, "/confirm/5901234123457", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"mode":"add","code":"5901234123457","name":"","qty":1,"unit":"buc","expiryDate":""}`, w.Body.String())

	w = do(h, http.MethodPost, "/confirm/5901234123457", `{"name":"Milk","qty":2,"unit":"l","expiryDate":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var item model.InventoryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	require.NotEmpty(t, item.ID)
	require.Equal(t, "5901234123457", item.EAN)

	w = do(h, http.MethodGet, "/confirm/5901234123457", "")
	require.Equal(t, http.StatusOK, w.Code)
	var form dto.Form
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	require.Equal(t, "Milk", form.Name)
	require.Equal(t, 2.0, form.Qty)
	require.Equal(t, model.UnitLiter, form.Unit)
}

func TestConfirmValidation(t *testing.T) {
	h, items := setup(t)

	w := do(h, http.MethodPost, "/confirm/manual", `{"name":"","qty":-1,"unit":"buc"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"validation_failed","details":{"name":"is required","qty":"must be greater than zero"}}`, w.Body.String())

	w = do(h, http.MethodPost, "/confirm/manual", `{"name":"Eggs","colour":"brown"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	all, err := items.GetAllInventoryItems(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestEditFlow(t *testing.T) {
	h, items := setup(t)
	ctx := context.Background()

	item, err := items.AddInventoryItem(ctx, &model.NewInventoryItem{EAN: "manual-1", Name: "Soup", Qty: 1, Unit: model.UnitLiter})
	require.NoError(t, err)

	w := do(h, http.MethodGet, "/edit/"+item.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var form dto.Form
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	require.Equal(t, dto.ModeEdit, form.Mode)
	require.Equal(t, "Soup", form.Name)

	w = do(h, http.MethodPost, "/edit/"+item.ID, `{"name":"Soup","qty":3,"unit":"l","expiryDate":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := items.GetInventoryItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 3.0, got.Qty)

	require.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/edit/missing", "").Code)
	require.Equal(t, http.StatusNotFound,
		do(h, http.MethodPost, "/edit/missing", `{"name":"x","qty":1,"unit":"g"}`).Code)
}

func TestListUnits(t *testing.T) {
	h, _ := setup(t)
	w := do(h, http.MethodGet, "/units", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `["buc","g","kg","ml","l"]`, w.Body.String())
}
