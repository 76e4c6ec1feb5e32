package engine

import (
	"math"
	"sort"
	"time"

	"github.com/motorlog/motorlog/internal/models"
)

// Urgency tiers, most urgent first.
const (
	TierOverdue = 0 // past due
	TierUrgent  = 1 // due within 2 days
	TierSoon    = 2 // due within a week
	TierOK      = 3 // more than a week out
)

// neverDue is the sentinel for items with no scheduled date: they sort last
// and never count as due soon.
const neverDue = math.MaxInt32

// DaysUntil returns whole calendar days from now until the given date.
// A zero date returns the neverDue sentinel.
func DaysUntil(date time.Time, now time.Time) int {
	if date.IsZero() {
		return neverDue
	}
	return daysBetween(now, date)
}

// UrgencyTier classifies how soon an item is due.
func UrgencyTier(item models.MaintenanceItem, now time.Time) int {
	days := DaysUntil(item.NextChangeDate, now)
	switch {
	case days < 0:
		return TierOverdue
	case days <= 2:
		return TierUrgent
	case days <= 7:
		return TierSoon
	default:
		return TierOK
	}
}

// RankAlerts collapses duplicate items by title, keeping the one due
// earliest, and orders the result by urgency tier then due date. Items with
// an empty title are never merged with each other. The operation is
// idempotent: ranking an already ranked list returns it unchanged.
func RankAlerts(items []models.MaintenanceItem, now time.Time) []models.MaintenanceItem {
	byTitle := make(map[string]models.MaintenanceItem)
	order := make([]string, 0, len(items))
	var untitled []models.MaintenanceItem

	for _, item := range items {
		if item.Title == "" {
			untitled = append(untitled, item)
			continue
		}
		kept, seen := byTitle[item.Title]
		if !seen {
			byTitle[item.Title] = item
			order = append(order, item.Title)
			continue
		}
		if dueBefore(item, kept) {
			byTitle[item.Title] = item
		}
	}

	ranked := make([]models.MaintenanceItem, 0, len(order)+len(untitled))
	for _, title := range order {
		ranked = append(ranked, byTitle[title])
	}
	ranked = append(ranked, untitled...)

	sort.SliceStable(ranked, func(i, j int) bool {
		ti, tj := UrgencyTier(ranked[i], now), UrgencyTier(ranked[j], now)
		if ti != tj {
			return ti < tj
		}
		return dueBefore(ranked[i], ranked[j])
	})
	return ranked
}

// dueBefore reports whether a is due strictly before b. An item without a
// date is never preferred over one with a date.
func dueBefore(a, b models.MaintenanceItem) bool {
	if a.NextChangeDate.IsZero() {
		return false
	}
	if b.NextChangeDate.IsZero() {
		return true
	}
	return a.NextChangeDate.Before(b.NextChangeDate)
}
