package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/models"
)

// RecordHandler handles service record requests. Writes go through the
// store so item schedules stay consistent with the history.
type RecordHandler struct {
	store *db.Store
}

// NewRecordHandler creates a new service record handler.
func NewRecordHandler(store *db.Store) *RecordHandler {
	return &RecordHandler{store: store}
}

// Create handles POST /api/vehicles/{id}/records.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var record models.ServiceRecord
	if err := json.Unmarshal(body, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	record.VehicleID = r.PathValue("id")

	if record.Type == "" {
		http.Error(w, "Service type is required", http.StatusBadRequest)
		return
	}
	if record.Mileage < 0 {
		http.Error(w, "Mileage must be non-negative", http.StatusBadRequest)
		return
	}
	if record.Date.IsZero() {
		http.Error(w, "Service date is required", http.StatusBadRequest)
		return
	}

	id, err := h.store.AddServiceRecord(r.Context(), record)
	if err != nil {
		http.Error(w, "Failed to create record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// List handles GET /api/vehicles/{id}/records.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Records.FindServiceRecordsByVehicle(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Failed to list records", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Update handles PUT /api/records/{id}.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var record models.ServiceRecord
	if err := json.Unmarshal(body, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if record.Mileage < 0 {
		http.Error(w, "Mileage must be non-negative", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateServiceRecord(r.Context(), r.PathValue("id"), record); err != nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/records/{id}.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteServiceRecord(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
