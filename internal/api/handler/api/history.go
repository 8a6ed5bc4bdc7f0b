package api

import (
	"net/http"
	"strconv"

	"github.com/naratip/goldwatch/internal/api/response"
	"github.com/naratip/goldwatch/internal/core"
)

// HistoryApp defines the interface needed from app.App.
type HistoryApp interface {
	History() []core.PriceUpdate
	TodayHistory() []core.PriceUpdate
	TodayStats() *core.SessionStats
}

// HistoryHandler serves the price update log and session statistics.
type HistoryHandler struct {
	app HistoryApp
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(app HistoryApp) *HistoryHandler {
	return &HistoryHandler{app: app}
}

// List returns price updates. By default only today's updates are
// returned; ?scope=all returns the full buffer.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var updates []core.PriceUpdate
	if q.Get("scope") == "all" {
		updates = h.app.History()
	} else {
		updates = h.app.TodayHistory()
	}

	if limit := q.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n >= 0 && n < len(updates) {
			updates = updates[len(updates)-n:]
		}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"updates": updates,
		"count":   len(updates),
	})
}

// Stats returns today's session statistics, or null before the first
// update of the day.
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.app.TodayStats())
}
