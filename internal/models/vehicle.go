package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// FuelType represents a vehicle powertrain
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

// IsValidFuelType checks if a fuel type is one of the known powertrains.
// Unknown values are not an error: downstream filtering treats them as
// "no restriction".
func IsValidFuelType(ft FuelType) bool {
	switch ft {
	case FuelGasoline, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	default:
		return false
	}
}

// Vehicle represents a tracked vehicle.
type Vehicle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"owner_id" json:"owner_id"`
	Make      string             `bson:"make" json:"make"`
	Model     string             `bson:"model" json:"model"`
	Year      int                `bson:"year" json:"year"`
	FuelType  FuelType           `bson:"fuel_type" json:"fuel_type"`
	Mileage   int                `bson:"mileage" json:"mileage"` // current odometer, in kilometers
	Plate     string             `bson:"plate" json:"plate"`
	Status    string             `bson:"status" json:"status"` // "active" or "archived"
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
