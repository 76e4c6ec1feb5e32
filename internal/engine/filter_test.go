package engine

import (
	"testing"

	"github.com/motorlog/motorlog/internal/models"
)

func titled(titles ...string) []models.MaintenanceItem {
	items := make([]models.MaintenanceItem, len(titles))
	for i, title := range titles {
		items[i] = models.MaintenanceItem{Title: title}
	}
	return items
}

func TestFilterTasksByFuelType(t *testing.T) {
	tests := []struct {
		name     string
		fuelType models.FuelType
		input    []string
		expected []string
	}{
		{
			"electric drops oil tasks",
			models.FuelElectric,
			[]string{"Oil Change", "Brake Pads", "Tire Rotation"},
			[]string{"Brake Pads", "Tire Rotation"},
		},
		{
			"gasoline keeps oil",
			models.FuelGasoline,
			[]string{"Oil Change", "Glow Plugs", "Brake Pads"},
			[]string{"Oil Change", "Brake Pads"},
		},
		{
			"diesel keeps glow plugs",
			models.FuelDiesel,
			[]string{"Glow Plugs", "Spark Plugs", "Fuel Filter"},
			[]string{"Glow Plugs", "Fuel Filter"},
		},
		{
			"hybrid keeps hv battery check",
			models.FuelHybrid,
			[]string{"High Voltage Battery Check", "Exhaust Inspection"},
			[]string{"High Voltage Battery Check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasksByFuelType(tt.fuelType, titled(tt.input...))
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d items, want %d", len(got), len(tt.expected))
			}
			for i, item := range got {
				if item.Title != tt.expected[i] {
					t.Errorf("item %d = %q, want %q", i, item.Title, tt.expected[i])
				}
			}
		})
	}
}

func TestFilterUnknownFuelTypePassesThrough(t *testing.T) {
	// No allow-list means no restriction, never reject-all.
	input := titled("Oil Change", "Flux Capacitor Service", "Brake Pads")

	for _, ft := range []models.FuelType{"", "steam", "unknown"} {
		got := FilterTasksByFuelType(ft, input)
		if len(got) != len(input) {
			t.Errorf("fuel type %q: got %d items, want all %d passed through", ft, len(got), len(input))
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := FilterTasksByFuelType(models.FuelGasoline, nil)
	if len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
}
