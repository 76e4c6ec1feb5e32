package engine

import (
	"time"

	"github.com/motorlog/motorlog/internal/models"
)

// Status classifies how close a prediction is to its due point.
type Status string

const (
	StatusEstimate Status = "estimate" // fallback forecast, too uncertain to flag
	StatusOverdue  Status = "overdue"
	StatusDueSoon  Status = "due_soon"
	StatusNormal   Status = "normal"
)

// dueSoonThreshold is the combined progress at which a task flips to
// due_soon.
const dueSoonThreshold = 0.85

// Progress converts a prediction plus the vehicle's current odometer and
// the current time into a normalized 0-1 "closeness to due" value and a
// discrete status. The mileage axis only participates when the prediction
// spans a positive mileage interval.
func Progress(p models.MaintenancePrediction, currentMileage int, now time.Time) (float64, Status) {
	dateSpan := p.NextDate.Sub(p.LastDate)
	if dateSpan < time.Second {
		dateSpan = time.Second
	}
	dateProgress := clamp01(float64(now.Sub(p.LastDate)) / float64(dateSpan))

	combined := dateProgress
	if p.NextMileage > p.LastMileage {
		span := p.NextMileage - p.LastMileage
		if span < 1 {
			span = 1
		}
		mileageProgress := clamp01(float64(currentMileage-p.LastMileage) / float64(span))
		combined = (dateProgress + mileageProgress) / 2
	}

	if p.IsFallback {
		return combined, StatusEstimate
	}
	if isOverdue(p, currentMileage, now) {
		return combined, StatusOverdue
	}
	if combined >= dueSoonThreshold {
		return combined, StatusDueSoon
	}
	return combined, StatusNormal
}

// isOverdue reports whether a history-based prediction has passed its due
// date or due mileage. Fallback predictions are never overdue: the due point
// is an estimate, not a commitment.
func isOverdue(p models.MaintenancePrediction, currentMileage int, now time.Time) bool {
	if p.IsFallback {
		return false
	}
	if now.After(p.NextDate) {
		return true
	}
	return p.NextMileage > 0 && currentMileage >= p.NextMileage
}
