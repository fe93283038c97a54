package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/fridge-inventory/internal/entry"
	"github.com/fekuna/fridge-inventory/internal/entry/dto"
	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/fekuna/fridge-inventory/pkg/httpx"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EntryHandler struct {
	uc     entry.UseCase
	logger logger.ZapLogger
}

func NewEntryHandler(uc entry.UseCase, log logger.ZapLogger) *EntryHandler {
	return &EntryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *EntryHandler) MountRoutes(r chi.Router) {
	r.Get("/confirm/{code}", h.LoadConfirm)
	r.Post("/confirm/{code}", h.SubmitConfirm)
	r.Get("/edit/{id}", h.LoadEdit)
	r.Post("/edit/{id}", h.SubmitEdit)
	r.Get("/units", h.ListUnits)
}

// LoadConfirm returns the prefilled form for a scanned code or "manual".
func (h *EntryHandler) LoadConfirm(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	form, err := h.uc.LoadForCode(r.Context(), code)
	if err != nil {
		h.writeError(w, err, zap.String("code", code))
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *EntryHandler) SubmitConfirm(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var in dto.FormInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	form := dto.NewBlankForm(code)
	form.Apply(&in)
	item, err := h.uc.Submit(r.Context(), form)
	if err != nil {
		h.writeError(w, err, zap.String("code", code))
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *EntryHandler) LoadEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, err := h.uc.LoadForEdit(r.Context(), id)
	if err != nil {
		h.writeError(w, err, zap.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *EntryHandler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in dto.FormInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	form := &dto.Form{Mode: dto.ModeEdit, ID: id}
	form.Apply(&in)
	item, err := h.uc.Submit(r.Context(), form)
	if err != nil {
		h.writeError(w, err, zap.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *EntryHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, model.Units)
}

func (h *EntryHandler) writeError(w http.ResponseWriter, err error, fields ...zap.Field) {
	var verr *entry.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
	case errors.Is(err, entry.ErrItemNotFound):
		httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
	default:
		h.logger.Error("entry request failed", append(fields, zap.Error(err))...)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
