package api

import (
	"net/http"

	"github.com/naratip/goldwatch/internal/api/response"
	"github.com/naratip/goldwatch/internal/core"
)

// AnalysisApp defines the interface needed from app.App.
type AnalysisApp interface {
	Analysis() (core.IndicatorSnapshot, core.TradingSignal, bool)
}

// AnalysisHandler serves technical indicators and the derived signal.
type AnalysisHandler struct {
	app AnalysisApp
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(app AnalysisApp) *AnalysisHandler {
	return &AnalysisHandler{app: app}
}

// Get returns the latest indicator snapshot and trading signal.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, sig, ok := h.app.Analysis()
	if !ok {
		response.FromError(w, core.ErrFeedUnavailable)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"indicators": snap,
		"signal":     sig,
	})
}
