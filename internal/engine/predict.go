package engine

import (
	"math"
	"sort"
	"time"

	"github.com/motorlog/motorlog/internal/models"
)

// Confidence levels for fallback forecasts; history-based forecasts scale
// with record count between minHistoryConfidence and maxHistoryConfidence.
const (
	noHistoryConfidence   = 0.35
	oneRecordConfidence   = 0.45
	minHistoryConfidence  = 0.55
	maxHistoryConfidence  = 0.95
	historyConfidenceSpan = 6.0

	// Below this usage rate (km/day) the vehicle is effectively parked and
	// rate extrapolation is meaningless.
	minUsableRate = 1.0
)

// RecordPoint is a known (date, odometer) pair from a past service.
type RecordPoint struct {
	Date    time.Time
	Mileage int
}

// PredictFallback forecasts the next service from the default interval table.
// last is the most recent known service for the category, or nil when the
// vehicle has no history at all.
func PredictFallback(category Category, vehicle models.Vehicle, last *RecordPoint, now time.Time) models.MaintenancePrediction {
	iv := DefaultInterval(category)

	lastDate := now
	lastMileage := vehicle.Mileage
	confidence := noHistoryConfidence
	if last != nil {
		lastDate = last.Date
		lastMileage = last.Mileage
		confidence = oneRecordConfidence
	}

	nextMileage := lastMileage + iv.Km
	if nextMileage < vehicle.Mileage {
		nextMileage = vehicle.Mileage
	}

	return models.MaintenancePrediction{
		Type:        string(category),
		NextDate:    lastDate.AddDate(0, 0, iv.Days),
		NextMileage: nextMileage,
		Confidence:  confidence,
		Basis:       models.BasisFallback,
		LastDate:    lastDate,
		LastMileage: lastMileage,
		IsFallback:  true,
	}
}

// Predict forecasts the next service for one category. records must all
// belong to that category but may arrive in any order; with fewer than two
// records the forecast falls back to the default interval table.
func Predict(category Category, records []models.ServiceRecord, vehicle models.Vehicle, now time.Time) models.MaintenancePrediction {
	sorted := make([]models.ServiceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	switch len(sorted) {
	case 0:
		return PredictFallback(category, vehicle, nil, now)
	case 1:
		return PredictFallback(category, vehicle, &RecordPoint{Date: sorted[0].Date, Mileage: sorted[0].Mileage}, now)
	}

	latest, previous := sorted[0], sorted[1]

	deltaDays := daysBetween(previous.Date, latest.Date)
	if deltaDays < 1 {
		deltaDays = 1
	}
	deltaKm := latest.Mileage - previous.Mileage
	if deltaKm < 1 {
		deltaKm = 1
	}
	ratePerDay := float64(deltaKm) / float64(deltaDays)

	// Parked or barely driven: rate extrapolation would push the due date
	// absurdly far out, so use the interval table from the latest service.
	if ratePerDay < minUsableRate {
		return PredictFallback(category, vehicle, &RecordPoint{Date: latest.Date, Mileage: latest.Mileage}, now)
	}

	iv := DefaultInterval(category)
	daysToKmTarget := iv.Days
	if iv.Km > 0 {
		daysToKmTarget = int(math.Ceil(float64(iv.Km) / ratePerDay))
	}
	byDistance := latest.Date.AddDate(0, 0, daysToKmTarget)
	byTime := latest.Date.AddDate(0, 0, iv.Days)

	// Earlier of the two candidates keeps the estimate conservative.
	nextDate := byDistance
	if byTime.Before(byDistance) {
		nextDate = byTime
	}

	daysRemaining := daysBetween(now, nextDate)
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	nextMileage := int(math.Round(float64(vehicle.Mileage) + float64(daysRemaining)*ratePerDay))
	if nextMileage < vehicle.Mileage {
		nextMileage = vehicle.Mileage
	}
	if nextMileage < latest.Mileage {
		nextMileage = latest.Mileage
	}

	confidence := clamp(float64(len(sorted))/historyConfidenceSpan, minHistoryConfidence, maxHistoryConfidence)

	return models.MaintenancePrediction{
		Type:        string(category),
		NextDate:    nextDate,
		NextMileage: nextMileage,
		Confidence:  confidence,
		Basis:       models.BasisHistory,
		LastDate:    latest.Date,
		LastMileage: latest.Mileage,
		IsFallback:  false,
	}
}

// PredictAll groups a vehicle's service records by canonical category and
// forecasts each one, sorted ascending by next due date.
func PredictAll(records []models.ServiceRecord, vehicle models.Vehicle, now time.Time) []models.MaintenancePrediction {
	byCategory := make(map[Category][]models.ServiceRecord)
	for _, r := range records {
		cat := Normalize(r.Type)
		byCategory[cat] = append(byCategory[cat], r)
	}

	predictions := make([]models.MaintenancePrediction, 0, len(byCategory))
	for cat, recs := range byCategory {
		predictions = append(predictions, Predict(cat, recs, vehicle, now))
	}
	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].NextDate.Before(predictions[j].NextDate)
	})
	return predictions
}

// truncateDay normalizes a time to calendar-day granularity.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns whole calendar days from a to b, negative if b is
// before a.
func daysBetween(a, b time.Time) int {
	return int(truncateDay(b).Sub(truncateDay(a)).Hours() / 24)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
