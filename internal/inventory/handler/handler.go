package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fekuna/fridge-inventory/internal/inventory"
	"github.com/fekuna/fridge-inventory/internal/inventory/dto"
	"github.com/fekuna/fridge-inventory/pkg/httpx"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) MountRoutes(r chi.Router) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Get("/{id}", h.GetItem)
		r.Delete("/{id}", h.DeleteItem)
	})
}

// ListItems serves the display list. q filters by name, expiring=1 keeps items
// within the expiring-soon window.
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := &dto.ListFilters{
		Search:       query.Get("q"),
		ExpiringOnly: parseFlag(query.Get("expiring")),
	}

	rows, err := h.uc.ListItems(r.Context(), filters)
	if err != nil {
		h.logger.Error("list inventory failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.ListResponse{Items: rows, Total: len(rows)})
}

func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := h.uc.GetInventoryItem(r.Context(), id)
	if err != nil {
		h.logger.Error("get inventory item failed", zap.String("id", id), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if item == nil {
		httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// DeleteItem consumes an item. Unknown ids also answer 204.
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.uc.DeleteInventoryItem(r.Context(), id); err != nil {
		h.logger.Error("delete inventory item failed", zap.String("id", id), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseFlag(v string) bool {
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return strings.EqualFold(v, "on") || strings.EqualFold(v, "yes")
}
