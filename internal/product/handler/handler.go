package handler

import (
	"net/http"

	"github.com/fekuna/fridge-inventory/internal/product"
	"github.com/fekuna/fridge-inventory/pkg/httpx"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) MountRoutes(r chi.Router) {
	r.Get("/products/{ean}", h.GetProduct)
}

// GetProduct exposes the remembered defaults for a barcode.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ean := chi.URLParam(r, "ean")
	p, err := h.uc.GetProduct(r.Context(), ean)
	if err != nil {
		h.logger.Error("get product failed", zap.String("ean", ean), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if p == nil {
		httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
