package engine

import (
	"time"

	"github.com/motorlog/motorlog/internal/models"
)

// RefreshItem recomputes a recurring item's last/next markers after a
// matching service record is added, edited, or deleted. latest is the most
// recent matching record, or nil when none remain. This path deliberately
// uses only the default-interval policy, not the two-point usage rate: one
// record is not enough signal for extrapolation.
func RefreshItem(item models.MaintenanceItem, latest *models.ServiceRecord, now time.Time) models.MaintenanceItem {
	intervalDays := item.IntervalDays
	intervalKm := item.IntervalKm
	if intervalDays <= 0 && intervalKm <= 0 {
		iv := DefaultInterval(ItemCategory(item))
		intervalDays = iv.Days
		intervalKm = iv.Km
	}
	if intervalDays <= 0 {
		intervalDays = DefaultInterval(ItemCategory(item)).Days
	}

	if latest != nil {
		item.LastChangeDate = latest.Date
		item.LastChangeMileage = latest.Mileage
	} else {
		item.LastChangeDate = now
		item.LastChangeMileage = 0
	}

	item.NextChangeDate = item.LastChangeDate.AddDate(0, 0, intervalDays)
	if intervalKm > 0 {
		item.NextChangeMileage = item.LastChangeMileage + intervalKm
	} else {
		item.NextChangeMileage = 0 // not tracked by distance
	}
	return item
}

// ItemCategory resolves an item's category, falling back to normalizing
// its title when the stored category is empty.
func ItemCategory(item models.MaintenanceItem) Category {
	if item.Category != "" {
		return Category(item.Category)
	}
	return Normalize(item.Title)
}
