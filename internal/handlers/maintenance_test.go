package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/models"
)

var testDay = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// fakeVehicles implements db.VehicleCollection over a map.
type fakeVehicles struct {
	vehicles map[string]models.Vehicle
}

func (f *fakeVehicles) InsertVehicle(_ context.Context, vehicle models.Vehicle) (string, error) {
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	f.vehicles[vehicle.ID.Hex()] = vehicle
	return vehicle.ID.Hex(), nil
}

func (f *fakeVehicles) FindVehicles(_ context.Context, _ interface{}, _ ...*options.FindOptions) (db.Cursor, error) {
	return nil, assert.AnError
}

func (f *fakeVehicles) FindVehicleByID(_ context.Context, id string) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, assert.AnError
	}
	return &v, nil
}

func (f *fakeVehicles) UpdateVehicle(_ context.Context, id string, vehicle models.Vehicle) error {
	if _, ok := f.vehicles[id]; !ok {
		return assert.AnError
	}
	f.vehicles[id] = vehicle
	return nil
}

func (f *fakeVehicles) DeleteVehicle(_ context.Context, id string) error {
	if _, ok := f.vehicles[id]; !ok {
		return assert.AnError
	}
	delete(f.vehicles, id)
	return nil
}

// fakeRecords implements db.ServiceRecordCollection over a slice.
type fakeRecords struct {
	records []models.ServiceRecord
}

func (f *fakeRecords) InsertServiceRecord(_ context.Context, record models.ServiceRecord) (string, error) {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	f.records = append(f.records, record)
	return record.ID.Hex(), nil
}

func (f *fakeRecords) FindServiceRecordByID(_ context.Context, id string) (*models.ServiceRecord, error) {
	for i := range f.records {
		if f.records[i].ID.Hex() == id {
			return &f.records[i], nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeRecords) FindServiceRecordsByVehicle(_ context.Context, vehicleID string) ([]models.ServiceRecord, error) {
	var out []models.ServiceRecord
	for _, r := range f.records {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecords) UpdateServiceRecord(_ context.Context, id string, record models.ServiceRecord) error {
	for i := range f.records {
		if f.records[i].ID.Hex() == id {
			record.ID = f.records[i].ID
			f.records[i] = record
			return nil
		}
	}
	return assert.AnError
}

func (f *fakeRecords) DeleteServiceRecord(_ context.Context, id string) error {
	for i := range f.records {
		if f.records[i].ID.Hex() == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return assert.AnError
}

// fakeItems implements db.MaintenanceItemCollection over a slice.
type fakeItems struct {
	items []models.MaintenanceItem
}

func (f *fakeItems) InsertMaintenanceItem(_ context.Context, item models.MaintenanceItem) (string, error) {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	f.items = append(f.items, item)
	return item.ID.Hex(), nil
}

func (f *fakeItems) FindMaintenanceItemsByVehicle(_ context.Context, vehicleID string) ([]models.MaintenanceItem, error) {
	var out []models.MaintenanceItem
	for _, it := range f.items {
		if it.VehicleID == vehicleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItems) UpdateMaintenanceItem(_ context.Context, id string, item models.MaintenanceItem) error {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items[i] = item
			return nil
		}
	}
	return assert.AnError
}

func (f *fakeItems) DeleteMaintenanceItem(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return assert.AnError
}

func newTestHandler(vehicle models.Vehicle) (*MaintenanceHandler, string, *fakeRecords, *fakeItems) {
	vehicles := &fakeVehicles{vehicles: make(map[string]models.Vehicle)}
	records := &fakeRecords{}
	items := &fakeItems{}
	id, _ := vehicles.InsertVehicle(context.Background(), vehicle)
	store := &db.Store{Vehicles: vehicles, Records: records, Items: items}
	h := NewMaintenanceHandler(store)
	h.now = func() time.Time { return testDay }
	return h, id, records, items
}

func doGet(t *testing.T, handlerFunc http.HandlerFunc, pattern, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handlerFunc)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPredictions(t *testing.T) {
	h, vehicleID, records, _ := newTestHandler(models.Vehicle{Mileage: 50000, FuelType: models.FuelGasoline})
	ctx := context.Background()

	_, err := records.InsertServiceRecord(ctx, models.ServiceRecord{
		VehicleID: vehicleID, Type: "Oil Change", Date: testDay.AddDate(0, 0, -90), Mileage: 40000,
	})
	require.NoError(t, err)
	_, err = records.InsertServiceRecord(ctx, models.ServiceRecord{
		VehicleID: vehicleID, Type: "Oil Change", Date: testDay, Mileage: 45000,
	})
	require.NoError(t, err)
	_, err = records.InsertServiceRecord(ctx, models.ServiceRecord{
		VehicleID: vehicleID, Type: "Battery Replacement", Date: testDay.AddDate(0, 0, -30), Mileage: 43000,
	})
	require.NoError(t, err)

	rec := doGet(t, h.Predictions, "GET /api/vehicles/{id}/predictions", "/api/vehicles/"+vehicleID+"/predictions")

	require.Equal(t, http.StatusOK, rec.Code)
	var out []PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)

	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].NextDate.Before(out[i-1].NextDate), "predictions must be sorted by next date")
	}
	for _, p := range out {
		assert.GreaterOrEqual(t, p.Progress, 0.0)
		assert.LessOrEqual(t, p.Progress, 1.0)
		assert.NotEmpty(t, p.Status)
		assert.GreaterOrEqual(t, p.NextMileage, 50000)
	}
}

func TestPredictionsVehicleNotFound(t *testing.T) {
	h, _, _, _ := newTestHandler(models.Vehicle{})

	rec := doGet(t, h.Predictions, "GET /api/vehicles/{id}/predictions", "/api/vehicles/missing/predictions")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlerts(t *testing.T) {
	h, vehicleID, _, items := newTestHandler(models.Vehicle{Mileage: 50000, FuelType: models.FuelElectric})
	ctx := context.Background()

	// Oil is irrelevant to an EV and must be filtered out; the duplicate
	// brake entries must collapse to the earlier one.
	fixtures := []models.MaintenanceItem{
		{VehicleID: vehicleID, Title: "Oil Change", NextChangeDate: testDay.AddDate(0, 0, 1)},
		{VehicleID: vehicleID, Title: "Brake Pads", NextChangeDate: testDay.AddDate(0, 0, 20)},
		{VehicleID: vehicleID, Title: "Brake Pads", NextChangeDate: testDay.AddDate(0, 0, 5)},
		{VehicleID: vehicleID, Title: "Tire Rotation", NextChangeDate: testDay.AddDate(0, 0, -2)},
	}
	for _, it := range fixtures {
		_, err := items.InsertMaintenanceItem(ctx, it)
		require.NoError(t, err)
	}

	rec := doGet(t, h.Alerts, "GET /api/vehicles/{id}/alerts", "/api/vehicles/"+vehicleID+"/alerts")

	require.Equal(t, http.StatusOK, rec.Code)
	var out []AlertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)

	assert.Equal(t, "Tire Rotation", out[0].Title)
	assert.Equal(t, 0, out[0].UrgencyTier)
	assert.Empty(t, out[0].Reminders, "overdue items have no future reminders")

	assert.Equal(t, "Brake Pads", out[1].Title)
	assert.Equal(t, testDay.AddDate(0, 0, 5), out[1].NextChangeDate)
	assert.Equal(t, 2, out[1].UrgencyTier)
	assert.Len(t, out[1].Reminders, 2)
}

func TestAlertsUnknownFuelTypePassesAll(t *testing.T) {
	h, vehicleID, _, items := newTestHandler(models.Vehicle{Mileage: 50000, FuelType: "steam"})
	ctx := context.Background()

	_, err := items.InsertMaintenanceItem(ctx, models.MaintenanceItem{
		VehicleID: vehicleID, Title: "Oil Change", NextChangeDate: testDay.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	rec := doGet(t, h.Alerts, "GET /api/vehicles/{id}/alerts", "/api/vehicles/"+vehicleID+"/alerts")

	require.Equal(t, http.StatusOK, rec.Code)
	var out []AlertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out, 1, "unknown fuel type must not filter anything")
}
