// Package notify computes maintenance reminder instants and publishes them
// to an MQTT topic for the delivery subsystem to pick up. The engine never
// delivers notifications itself; republishing with a retained message is how
// a reminder is rescheduled, and an empty retained payload cancels it.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/motorlog/motorlog/internal/models"
)

// ReminderOffsets are the days before a due date at which reminders fire.
var ReminderOffsets = []int{7, 3, 0}

// Reminder is one scheduled notification for a maintenance item.
type Reminder struct {
	VehicleID  string    `json:"vehicle_id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
	RemindAt   time.Time `json:"remind_at"`
	DaysBefore int       `json:"days_before"`
}

// ReminderTimes returns the reminders for a due date at the standard
// offsets, keeping only those whose trigger instant is still in the future.
// A zero due date yields no reminders.
func ReminderTimes(due time.Time, now time.Time) []time.Time {
	if due.IsZero() {
		return nil
	}
	var times []time.Time
	for _, offset := range ReminderOffsets {
		at := due.AddDate(0, 0, -offset)
		if at.After(now) {
			times = append(times, at)
		}
	}
	return times
}

// RemindersFor builds the future reminders for one maintenance item.
func RemindersFor(vehicleID string, item models.MaintenanceItem, now time.Time) []Reminder {
	if item.NextChangeDate.IsZero() {
		return nil
	}
	var reminders []Reminder
	for _, offset := range ReminderOffsets {
		at := item.NextChangeDate.AddDate(0, 0, -offset)
		if !at.After(now) {
			continue
		}
		reminders = append(reminders, Reminder{
			VehicleID:  vehicleID,
			Title:      item.Title,
			DueDate:    item.NextChangeDate,
			RemindAt:   at,
			DaysBefore: offset,
		})
	}
	return reminders
}

// Publisher publishes reminders over MQTT.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewPublisher connects to the broker and returns a publisher. topicPrefix
// is prepended to every reminder topic, e.g. "motorlog/reminders".
func NewPublisher(brokerURL, clientID, topicPrefix string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout for %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	return &Publisher{client: client, topicPrefix: topicPrefix}, nil
}

// topic returns the retained topic for one item's reminders.
func (p *Publisher) topic(vehicleID, title string) string {
	return fmt.Sprintf("%s/%s/%s", p.topicPrefix, vehicleID, title)
}

// ItemRescheduled recomputes and republishes the reminders for an item.
// The retained message replaces whatever schedule was published before, so
// moving a due date reschedules and nothing stale survives.
func (p *Publisher) ItemRescheduled(vehicleID string, item models.MaintenanceItem) {
	reminders := RemindersFor(vehicleID, item, time.Now())
	if len(reminders) == 0 {
		p.cancel(vehicleID, item.Title)
		return
	}

	payload, err := json.Marshal(reminders)
	if err != nil {
		log.WithError(err).Error("failed to marshal reminders")
		return
	}

	token := p.client.Publish(p.topic(vehicleID, item.Title), 1, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		log.WithFields(log.Fields{
			"vehicle_id": vehicleID,
			"title":      item.Title,
		}).Warn("mqtt publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.WithError(err).WithField("title", item.Title).Error("mqtt publish failed")
		return
	}
	log.WithFields(log.Fields{
		"vehicle_id": vehicleID,
		"title":      item.Title,
		"reminders":  len(reminders),
	}).Debug("reminders published")
}

// cancel clears the retained reminder schedule for an item.
func (p *Publisher) cancel(vehicleID, title string) {
	token := p.client.Publish(p.topic(vehicleID, title), 1, true, []byte{})
	token.WaitTimeout(5 * time.Second)
	if err := token.Error(); err != nil {
		log.WithError(err).WithField("title", title).Error("mqtt cancel failed")
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
