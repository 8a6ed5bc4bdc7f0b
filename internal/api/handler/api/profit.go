package api

import (
	"encoding/json"
	"net/http"

	"github.com/naratip/goldwatch/internal/api/response"
	"github.com/naratip/goldwatch/internal/core"
	"github.com/naratip/goldwatch/internal/profit"
)

// ProfitHandler values gold holdings against a quote.
type ProfitHandler struct {
	app PriceApp
}

// NewProfitHandler creates a new profit handler.
func NewProfitHandler(app PriceApp) *ProfitHandler {
	return &ProfitHandler{app: app}
}

// Calculate values the holding in the request body. When current_price
// is omitted the latest bar sell quote is used.
func (h *ProfitHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in profit.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.FromError(w, core.WrapError(core.ErrInvalidInput, err))
		return
	}

	if in.CurrentPrice == 0 {
		if price := h.app.LatestPrice(); price != nil {
			in.CurrentPrice = price.Bar.Sell
		}
	}

	result, err := profit.Calculate(in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
