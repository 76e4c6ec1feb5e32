package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Vehicle mirrors the API payload for vehicle creation.
type Vehicle struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	FuelType string `json:"fuel_type"`
	Mileage  int    `json:"mileage"`
	Plate    string `json:"plate"`
	Status   string `json:"status"`
}

// ServiceRecord mirrors the API payload for service history entries.
type ServiceRecord struct {
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Mileage   int       `json:"mileage"`
	CostParts float64   `json:"cost_parts"`
	CostLabor float64   `json:"cost_labor"`
	Shop      string    `json:"shop"`
}

var fleet = map[string]struct {
	makes  []string
	models []string
}{
	"gasoline": {[]string{"Toyota", "Honda", "Ford", "BMW"}, []string{"Camry", "Civic", "Focus", "320i"}},
	"diesel":   {[]string{"Volkswagen", "Mercedes", "Ford"}, []string{"Golf TDI", "E220d", "Ranger"}},
	"hybrid":   {[]string{"Toyota", "Honda", "Kia"}, []string{"Prius", "Insight", "Niro"}},
	"electric": {[]string{"Tesla", "Nissan", "Hyundai"}, []string{"Model 3", "Leaf", "Ioniq 5"}},
}

// serviceTypes by fuel type; free-text on purpose so the server has to
// normalize them.
var serviceTypes = map[string][]string{
	"gasoline": {"Oil Change", "brake pads", "Battery Replacement", "Tire Rotation", "Coolant Fluid Flush", "Annual Inspection"},
	"diesel":   {"oil change", "Brake Service", "Battery Replacement", "tire rotation", "Fuel Filter", "Annual Inspection"},
	"hybrid":   {"Oil Change", "Brake Pads", "Battery Check", "Tire Rotation", "Inspection"},
	"electric": {"Brake Fluid", "Battery Check", "Tire Rotation", "Cabin Filter"},
}

var shops = []string{"Main Street Garage", "QuickFit", "AutoCare Plus", "Dealer Service"}

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func login(apiURL, username, password string) error {
	payload, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := authorizedPost(apiURL+"/auth/login", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	authToken = result.Token
	log.WithField("username", username).Info("logged in")
	return nil
}

func createVehicle(apiURL, fuelType string) (string, int, error) {
	f := fleet[fuelType]
	idx := rand.Intn(len(f.makes))
	mileage := 20000 + rand.Intn(120000)

	vehicle := Vehicle{
		Make:     f.makes[idx],
		Model:    f.models[idx],
		Year:     2018 + rand.Intn(7),
		FuelType: fuelType,
		Mileage:  mileage,
		Plate:    fmt.Sprintf("SIM-%04d", rand.Intn(10000)),
		Status:   "active",
	}

	data, err := json.Marshal(vehicle)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedPost(apiURL+"/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", 0, fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("failed to decode response: %w", err)
	}
	createdID, ok := result["id"].(string)
	if !ok {
		return "", 0, fmt.Errorf("invalid vehicle ID in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id": createdID,
		"fuel_type":  fuelType,
		"make":       vehicle.Make,
		"model":      vehicle.Model,
		"mileage":    mileage,
	}).Info("created vehicle")

	return createdID, mileage, nil
}

// seedHistory posts a plausible service history: services spread over the
// past two years with mileage walking up toward the vehicle's current
// odometer.
func seedHistory(apiURL, vehicleID, fuelType string, currentMileage int, services int) error {
	types := serviceTypes[fuelType]
	spanDays := 730
	kmPerDay := float64(rand.Intn(40) + 15)

	for i := 0; i < services; i++ {
		daysAgo := spanDays - i*(spanDays/services) - rand.Intn(20)
		if daysAgo < 1 {
			daysAgo = 1
		}
		mileage := currentMileage - int(float64(daysAgo)*kmPerDay)
		if mileage < 0 {
			mileage = rand.Intn(1000)
		}

		record := ServiceRecord{
			Type:      types[rand.Intn(len(types))],
			Date:      time.Now().AddDate(0, 0, -daysAgo),
			Mileage:   mileage,
			CostParts: float64(rand.Intn(30000)) / 100,
			CostLabor: float64(rand.Intn(20000)) / 100,
			Shop:      shops[rand.Intn(len(shops))],
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		resp, err := authorizedPost(apiURL+"/vehicles/"+vehicleID+"/records", bytes.NewBuffer(data))
		if err != nil {
			return fmt.Errorf("failed to post record: %w", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("record creation failed with status: %d", resp.StatusCode)
		}
	}

	log.WithFields(log.Fields{
		"vehicle_id": vehicleID,
		"services":   services,
	}).Info("seeded service history")
	return nil
}

func fetchPredictions(apiURL, vehicleID string) error {
	req, err := http.NewRequest(http.MethodGet, apiURL+"/vehicles/"+vehicleID+"/predictions", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("predictions failed with status: %d", resp.StatusCode)
	}

	var predictions []struct {
		Type       string  `json:"type"`
		NextDate   string  `json:"next_date"`
		Confidence float64 `json:"confidence"`
		Basis      string  `json:"basis"`
		Status     string  `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return err
	}
	for _, p := range predictions {
		log.WithFields(log.Fields{
			"vehicle_id": vehicleID,
			"type":       p.Type,
			"next_date":  p.NextDate,
			"confidence": p.Confidence,
			"basis":      p.Basis,
			"status":     p.Status,
		}).Info("prediction")
	}
	return nil
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	username := os.Getenv("SIM_USERNAME")
	if username == "" {
		username = "simulator"
	}
	password := os.Getenv("SIM_PASSWORD")
	if password == "" {
		password = "simulator-password"
	}
	numVehicles := 4
	if v := os.Getenv("SIM_VEHICLES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			numVehicles = parsed
		}
	}

	if err := login(apiURL, username, password); err != nil {
		log.WithError(err).Fatal("login failed")
	}

	fuelTypes := []string{"gasoline", "diesel", "hybrid", "electric"}
	for i := 0; i < numVehicles; i++ {
		fuelType := fuelTypes[i%len(fuelTypes)]
		vehicleID, mileage, err := createVehicle(apiURL, fuelType)
		if err != nil {
			log.WithError(err).Error("failed to create vehicle")
			continue
		}
		if err := seedHistory(apiURL, vehicleID, fuelType, mileage, 3+rand.Intn(5)); err != nil {
			log.WithError(err).Error("failed to seed history")
			continue
		}
		if err := fetchPredictions(apiURL, vehicleID); err != nil {
			log.WithError(err).Error("failed to fetch predictions")
		}
	}
}
