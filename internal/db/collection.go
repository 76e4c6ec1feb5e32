package db

import (
	"context"

	"github.com/motorlog/motorlog/internal/models"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Cursor defines the interface for cursor operations shared by all
// collection queries.
type Cursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	FindVehicles(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// ServiceRecordCollection defines the interface for service record
// operations.
type ServiceRecordCollection interface {
	InsertServiceRecord(ctx context.Context, record models.ServiceRecord) (string, error)
	FindServiceRecordByID(ctx context.Context, id string) (*models.ServiceRecord, error)
	FindServiceRecordsByVehicle(ctx context.Context, vehicleID string) ([]models.ServiceRecord, error)
	UpdateServiceRecord(ctx context.Context, id string, record models.ServiceRecord) error
	DeleteServiceRecord(ctx context.Context, id string) error
}

// MaintenanceItemCollection defines the interface for recurring maintenance
// item operations.
type MaintenanceItemCollection interface {
	InsertMaintenanceItem(ctx context.Context, item models.MaintenanceItem) (string, error)
	FindMaintenanceItemsByVehicle(ctx context.Context, vehicleID string) ([]models.MaintenanceItem, error)
	UpdateMaintenanceItem(ctx context.Context, id string, item models.MaintenanceItem) error
	DeleteMaintenanceItem(ctx context.Context, id string) error
}
