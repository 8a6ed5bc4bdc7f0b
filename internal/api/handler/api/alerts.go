package api

import (
	"encoding/json"
	"net/http"

	"github.com/naratip/goldwatch/internal/alert"
	"github.com/naratip/goldwatch/internal/api/response"
	"github.com/naratip/goldwatch/internal/core"
)

// AlertsApp defines the interface needed from app.App.
type AlertsApp interface {
	Alerts() []alert.Alert
	AddAlert(target float64, dir alert.Direction) (alert.Alert, error)
	RemoveAlert(id string) error
	ToggleAlert(id string) error
}

// AlertsHandler handles price alert CRUD requests.
type AlertsHandler struct {
	app AlertsApp
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(app AlertsApp) *AlertsHandler {
	return &AlertsHandler{app: app}
}

// List returns all alerts.
func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts := h.app.Alerts()

	response.JSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

type createAlertRequest struct {
	TargetPrice float64 `json:"target_price"`
	Direction   string  `json:"direction"`
}

// Create adds a new alert.
func (h *AlertsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FromError(w, core.WrapError(core.ErrInvalidInput, err))
		return
	}

	a, err := h.app.AddAlert(req.TargetPrice, alert.Direction(req.Direction))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, a)
}

// Delete removes an alert by ID.
func (h *AlertsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.app.RemoveAlert(id); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// Toggle flips an alert between active and paused.
func (h *AlertsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.app.ToggleAlert(id); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"toggled": id})
}
