package handler

import (
	"errors"
	"image"
	"io"
	"net/http"
	"net/url"

	"github.com/fekuna/fridge-inventory/internal/capture"
	"github.com/fekuna/fridge-inventory/pkg/httpx"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaxFrameBytes bounds the size of an uploaded frame.
const MaxFrameBytes = 10 << 20

type ScanResponse struct {
	Code    string `json:"code"`
	Confirm string `json:"confirm"`
}

type ScanHandler struct {
	decoder capture.Decoder
	logger  logger.ZapLogger
}

func NewScanHandler(decoder capture.Decoder, log logger.ZapLogger) *ScanHandler {
	return &ScanHandler{
		decoder: decoder,
		logger:  log,
	}
}

func (h *ScanHandler) MountRoutes(r chi.Router) {
	r.Post("/scan", h.Scan)
}

// Scan decodes one PNG or JPEG frame from the request body and points the client
// at the confirm route for the code.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	img, _, err := image.Decode(io.LimitReader(r.Body, MaxFrameBytes))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_image", err.Error())
		return
	}

	code, err := h.decoder.Decode(img)
	if errors.Is(err, capture.ErrNoCode) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "no_code_found", nil)
		return
	}
	if err != nil {
		h.logger.Error("decode frame failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	h.logger.Info("barcode detected", zap.String("code", code))
	httpx.JSON(w, http.StatusOK, ScanResponse{
		Code:    code,
		Confirm: "/api/confirm/" + url.PathEscape(code),
	})
}
