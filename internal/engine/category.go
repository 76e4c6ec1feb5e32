// Package engine implements the predictive maintenance engine: service-type
// normalization, due-date/mileage forecasting, fuel-type task filtering,
// alert deduplication and urgency ranking, and progress/status calculation.
//
// Every function is pure: the current time and current odometer reading are
// explicit parameters, and nothing here touches storage or the clock.
package engine

import "strings"

// Category is a canonical service category.
type Category string

const (
	CategoryOil        Category = "Oil"
	CategoryBrakes     Category = "Brakes"
	CategoryBattery    Category = "Battery"
	CategoryTires      Category = "Tires"
	CategoryFluids     Category = "Fluids"
	CategoryInspection Category = "Inspection"
	CategoryOther      Category = "Other"
)

// categoryRules maps keywords to categories. Order matters: the first
// matching rule wins, so "Brake Fluid" classifies as Brakes, not Fluids.
var categoryRules = []struct {
	keyword  string
	category Category
}{
	{"oil", CategoryOil},
	{"brake", CategoryBrakes},
	{"battery", CategoryBattery},
	{"tire", CategoryTires},
	{"fluid", CategoryFluids},
	{"inspect", CategoryInspection},
	{"filter", CategoryInspection},
}

// Normalize maps a free-text service type to a canonical category by
// case-insensitive substring match. Unmatched input maps to Other.
func Normalize(serviceType string) Category {
	lower := strings.ToLower(serviceType)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return CategoryOther
}

// Interval holds the default service interval for a category.
// Km == 0 means the category is tracked by elapsed time only.
type Interval struct {
	Km   int
	Days int
}

var defaultIntervals = map[Category]Interval{
	CategoryOil:        {Km: 8000, Days: 180},
	CategoryBrakes:     {Km: 30000, Days: 365},
	CategoryBattery:    {Km: 0, Days: 730},
	CategoryTires:      {Km: 10000, Days: 180},
	CategoryFluids:     {Km: 20000, Days: 365},
	CategoryInspection: {Km: 0, Days: 365},
}

// DefaultInterval returns the default service interval for a category.
// Unknown categories get the generic 10000 km / 180 day interval.
func DefaultInterval(category Category) Interval {
	if iv, ok := defaultIntervals[category]; ok {
		return iv
	}
	return Interval{Km: 10000, Days: 180}
}
