package db

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/motorlog/motorlog/internal/engine"
	"github.com/motorlog/motorlog/internal/models"
)

// Notifier receives schedule changes so reminders can be rescheduled or
// canceled. Implementations must tolerate being called repeatedly for the
// same item.
type Notifier interface {
	ItemRescheduled(vehicleID string, item models.MaintenanceItem)
}

// Store ties the collections together and keeps maintenance item schedules
// consistent with the service history: every record write triggers a
// recompute of the matching items.
type Store struct {
	Vehicles VehicleCollection
	Records  ServiceRecordCollection
	Items    MaintenanceItemCollection
	Users    UserCollection
	Notifier Notifier // optional
}

// AddServiceRecord inserts a record and refreshes matching item schedules.
func (s *Store) AddServiceRecord(ctx context.Context, record models.ServiceRecord) (string, error) {
	id, err := s.Records.InsertServiceRecord(ctx, record)
	if err != nil {
		return "", err
	}
	if err := s.RecomputeSchedule(ctx, record.VehicleID, record.Type); err != nil {
		log.WithError(err).WithField("vehicle_id", record.VehicleID).
			Warn("schedule recompute failed after record insert")
	}
	return id, nil
}

// UpdateServiceRecord updates a record and refreshes matching item
// schedules. When the edit changed the record's type, the old category's
// schedule is refreshed as well.
func (s *Store) UpdateServiceRecord(ctx context.Context, id string, record models.ServiceRecord) error {
	existing, err := s.Records.FindServiceRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if record.VehicleID == "" {
		record.VehicleID = existing.VehicleID
	}
	if err := s.Records.UpdateServiceRecord(ctx, id, record); err != nil {
		return err
	}
	if err := s.RecomputeSchedule(ctx, record.VehicleID, record.Type); err != nil {
		log.WithError(err).WithField("vehicle_id", record.VehicleID).
			Warn("schedule recompute failed after record update")
	}
	if engine.Normalize(existing.Type) != engine.Normalize(record.Type) {
		if err := s.RecomputeSchedule(ctx, existing.VehicleID, existing.Type); err != nil {
			log.WithError(err).WithField("vehicle_id", existing.VehicleID).
				Warn("schedule recompute failed for previous category")
		}
	}
	return nil
}

// DeleteServiceRecord removes a record and refreshes matching item
// schedules from whatever history remains.
func (s *Store) DeleteServiceRecord(ctx context.Context, id string) error {
	existing, err := s.Records.FindServiceRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Records.DeleteServiceRecord(ctx, id); err != nil {
		return err
	}
	if err := s.RecomputeSchedule(ctx, existing.VehicleID, existing.Type); err != nil {
		log.WithError(err).WithField("vehicle_id", existing.VehicleID).
			Warn("schedule recompute failed after record delete")
	}
	return nil
}

// RecomputeSchedule refreshes every maintenance item of the vehicle whose
// category matches the given service type, anchoring each one on the most
// recent matching record.
func (s *Store) RecomputeSchedule(ctx context.Context, vehicleID, serviceType string) error {
	category := engine.Normalize(serviceType)

	records, err := s.Records.FindServiceRecordsByVehicle(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}
	latest := latestForCategory(records, category)

	items, err := s.Items.FindMaintenanceItemsByVehicle(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("fetch items: %w", err)
	}

	now := time.Now()
	for _, item := range items {
		if engine.ItemCategory(item) != category {
			continue
		}
		refreshed := engine.RefreshItem(item, latest, now)
		if err := s.Items.UpdateMaintenanceItem(ctx, refreshed.ID.Hex(), refreshed); err != nil {
			return fmt.Errorf("update item %s: %w", refreshed.ID.Hex(), err)
		}
		log.WithFields(log.Fields{
			"vehicle_id": vehicleID,
			"title":      refreshed.Title,
			"next_date":  refreshed.NextChangeDate,
		}).Debug("maintenance item rescheduled")
		if s.Notifier != nil {
			s.Notifier.ItemRescheduled(vehicleID, refreshed)
		}
	}
	return nil
}

// latestForCategory returns the most recent record normalizing to the given
// category, or nil when there is none.
func latestForCategory(records []models.ServiceRecord, category engine.Category) *models.ServiceRecord {
	var latest *models.ServiceRecord
	for i := range records {
		if engine.Normalize(records[i].Type) != category {
			continue
		}
		if latest == nil || records[i].Date.After(latest.Date) {
			latest = &records[i]
		}
	}
	return latest
}
