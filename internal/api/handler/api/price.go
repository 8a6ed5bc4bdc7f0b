package api

import (
	"net/http"

	"github.com/naratip/goldwatch/internal/api/response"
	"github.com/naratip/goldwatch/internal/core"
)

// PriceApp defines the interface needed from app.App.
type PriceApp interface {
	LatestPrice() *core.GoldPrice
}

// PriceHandler serves the latest gold quote.
type PriceHandler struct {
	app PriceApp
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(app PriceApp) *PriceHandler {
	return &PriceHandler{app: app}
}

// Latest returns the most recent gold price.
func (h *PriceHandler) Latest(w http.ResponseWriter, r *http.Request) {
	price := h.app.LatestPrice()
	if price == nil {
		response.FromError(w, core.ErrFeedUnavailable)
		return
	}

	response.JSON(w, http.StatusOK, price)
}
