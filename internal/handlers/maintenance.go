package handlers

import (
	"net/http"
	"time"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/engine"
	"github.com/motorlog/motorlog/internal/models"
	"github.com/motorlog/motorlog/internal/notify"
)

// MaintenanceHandler serves the engine's outputs: per-category predictions
// with progress/status, and the deduplicated, urgency-ranked alert list.
type MaintenanceHandler struct {
	store *db.Store
	now   func() time.Time
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(store *db.Store) *MaintenanceHandler {
	return &MaintenanceHandler{store: store, now: time.Now}
}

// PredictionResponse is one forecast plus its progress and status.
type PredictionResponse struct {
	models.MaintenancePrediction
	Progress float64       `json:"progress"`
	Status   engine.Status `json:"status"`
}

// AlertResponse is one ranked maintenance item plus its urgency tier and
// upcoming reminder instants.
type AlertResponse struct {
	models.MaintenanceItem
	UrgencyTier int         `json:"urgency_tier"`
	Reminders   []time.Time `json:"reminders,omitempty"`
}

// Predictions handles GET /api/vehicles/{id}/predictions.
func (h *MaintenanceHandler) Predictions(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("id")

	vehicle, err := h.store.Vehicles.FindVehicleByID(r.Context(), vehicleID)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	records, err := h.store.Records.FindServiceRecordsByVehicle(r.Context(), vehicleID)
	if err != nil {
		http.Error(w, "Failed to load service history", http.StatusInternalServerError)
		return
	}

	now := h.now()
	predictions := engine.PredictAll(records, *vehicle, now)

	out := make([]PredictionResponse, len(predictions))
	for i, p := range predictions {
		progress, status := engine.Progress(p, vehicle.Mileage, now)
		out[i] = PredictionResponse{
			MaintenancePrediction: p,
			Progress:              progress,
			Status:                status,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Alerts handles GET /api/vehicles/{id}/alerts.
func (h *MaintenanceHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("id")

	vehicle, err := h.store.Vehicles.FindVehicleByID(r.Context(), vehicleID)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	items, err := h.store.Items.FindMaintenanceItemsByVehicle(r.Context(), vehicleID)
	if err != nil {
		http.Error(w, "Failed to load maintenance items", http.StatusInternalServerError)
		return
	}

	now := h.now()
	relevant := engine.FilterTasksByFuelType(vehicle.FuelType, items)
	ranked := engine.RankAlerts(relevant, now)

	out := make([]AlertResponse, len(ranked))
	for i, item := range ranked {
		out[i] = AlertResponse{
			MaintenanceItem: item,
			UrgencyTier:     engine.UrgencyTier(item, now),
			Reminders:       notify.ReminderTimes(item.NextChangeDate, now),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
