package engine

import (
	"github.com/motorlog/motorlog/internal/models"
)

// fuelTypeTasks lists the maintenance task titles relevant to each
// powertrain. A fuel type with no entry means "no restriction".
var fuelTypeTasks = map[models.FuelType][]string{
	models.FuelGasoline: {
		"Oil Change",
		"Oil Filter",
		"Air Filter",
		"Spark Plugs",
		"Brake Pads",
		"Brake Fluid",
		"Coolant Flush",
		"Transmission Fluid",
		"Battery Check",
		"Tire Rotation",
		"Exhaust Inspection",
	},
	models.FuelDiesel: {
		"Oil Change",
		"Oil Filter",
		"Air Filter",
		"Fuel Filter",
		"Glow Plugs",
		"Brake Pads",
		"Brake Fluid",
		"Coolant Flush",
		"Transmission Fluid",
		"Battery Check",
		"Tire Rotation",
		"Exhaust Inspection",
	},
	models.FuelHybrid: {
		"Oil Change",
		"Oil Filter",
		"Air Filter",
		"Spark Plugs",
		"Brake Pads",
		"Brake Fluid",
		"Coolant Flush",
		"Transmission Fluid",
		"Battery Check",
		"High Voltage Battery Check",
		"Tire Rotation",
	},
	models.FuelElectric: {
		"Brake Pads",
		"Brake Fluid",
		"Coolant Flush",
		"Battery Check",
		"High Voltage Battery Check",
		"Cabin Filter",
		"Tire Rotation",
	},
}

// FilterTasksByFuelType returns the items whose title is relevant to the
// given fuel type. An unrecognized or empty fuel type has no allow-list,
// which means no filtering: the input passes through unchanged. Callers
// rely on "no rule" meaning "no restriction", never "reject all".
func FilterTasksByFuelType(fuelType models.FuelType, items []models.MaintenanceItem) []models.MaintenanceItem {
	allowed, ok := fuelTypeTasks[fuelType]
	if !ok || len(allowed) == 0 {
		return items
	}

	allowSet := make(map[string]bool, len(allowed))
	for _, title := range allowed {
		allowSet[title] = true
	}

	filtered := make([]models.MaintenanceItem, 0, len(items))
	for _, item := range items {
		if allowSet[item.Title] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
