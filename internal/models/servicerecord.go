package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// ServiceRecord represents a completed maintenance service on a vehicle.
type ServiceRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID string             `json:"vehicle_id" bson:"vehicle_id"`
	Type      string             `json:"type" bson:"type"` // free text, e.g. "Oil Change", "brake pads"
	Date      time.Time          `json:"date" bson:"date"`
	Mileage   int                `json:"mileage" bson:"mileage"` // odometer at service time, in kilometers
	CostParts float64            `json:"cost_parts" bson:"cost_parts"` // in USD
	CostLabor float64            `json:"cost_labor" bson:"cost_labor"` // in USD
	Shop      string             `json:"shop" bson:"shop"`
	Notes     string             `json:"notes" bson:"notes"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// TotalCost returns parts plus labor.
func (r *ServiceRecord) TotalCost() float64 {
	return r.CostParts + r.CostLabor
}
