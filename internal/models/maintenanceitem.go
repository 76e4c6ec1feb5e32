package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// MaintenanceItem represents a recurring scheduled task for a vehicle.
// Title is the identity used for deduplication; IntervalKm or IntervalDays
// may be zero, meaning the task is not tracked on that axis.
type MaintenanceItem struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID         string             `json:"vehicle_id" bson:"vehicle_id"`
	Title             string             `json:"title" bson:"title"`
	Category          string             `json:"category" bson:"category"`
	IntervalDays      int                `json:"interval_days" bson:"interval_days"`
	IntervalKm        int                `json:"interval_km" bson:"interval_km"`
	LastChangeDate    time.Time          `json:"last_change_date" bson:"last_change_date"`
	LastChangeMileage int                `json:"last_change_mileage" bson:"last_change_mileage"`
	NextChangeDate    time.Time          `json:"next_change_date" bson:"next_change_date"`
	NextChangeMileage int                `json:"next_change_mileage" bson:"next_change_mileage"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}
