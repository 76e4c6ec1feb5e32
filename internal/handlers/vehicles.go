package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/models"
)

// VehicleHandler handles vehicle CRUD requests.
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var vehicle models.Vehicle
	if err := json.Unmarshal(body, &vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		http.Error(w, "Make and model are required", http.StatusBadRequest)
		return
	}
	if vehicle.Mileage < 0 {
		http.Error(w, "Mileage must be non-negative", http.StatusBadRequest)
		return
	}
	if vehicle.Status == "" {
		vehicle.Status = "active"
	}

	id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// List handles GET /api/vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.vehicles.FindVehicles(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var vehicles []models.Vehicle
	if err := cursor.All(r.Context(), &vehicles); err != nil {
		http.Error(w, "Failed to decode vehicles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Get handles GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Update handles PUT /api/vehicles/{id}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var vehicle models.Vehicle
	if err := json.Unmarshal(body, &vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if vehicle.Mileage < 0 {
		http.Error(w, "Mileage must be non-negative", http.StatusBadRequest)
		return
	}

	if err := h.vehicles.UpdateVehicle(r.Context(), r.PathValue("id"), vehicle); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/vehicles/{id}.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.DeleteVehicle(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
