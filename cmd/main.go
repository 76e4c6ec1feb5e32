package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/motorlog/motorlog/internal/auth"
	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/handlers"
	"github.com/motorlog/motorlog/internal/middleware"
	"github.com/motorlog/motorlog/internal/notify"
)

func newRouter(store *db.Store, authService *auth.Service) http.Handler {
	authHandler := handlers.NewAuthHandler(authService, store.Users)
	vehicleHandler := handlers.NewVehicleHandler(store.Vehicles)
	recordHandler := handlers.NewRecordHandler(store)
	maintenanceHandler := handlers.NewMaintenanceHandler(store)

	authMW := middleware.NewAuthMiddleware(authService)
	perm := authMW.RequirePermission

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)

	mux.Handle("POST /api/vehicles", perm("manage_vehicles")(http.HandlerFunc(vehicleHandler.Create)))
	mux.Handle("GET /api/vehicles", perm("view_vehicles")(http.HandlerFunc(vehicleHandler.List)))
	mux.Handle("GET /api/vehicles/{id}", perm("view_vehicles")(http.HandlerFunc(vehicleHandler.Get)))
	mux.Handle("PUT /api/vehicles/{id}", perm("manage_vehicles")(http.HandlerFunc(vehicleHandler.Update)))
	mux.Handle("DELETE /api/vehicles/{id}", perm("manage_vehicles")(http.HandlerFunc(vehicleHandler.Delete)))

	mux.Handle("POST /api/vehicles/{id}/records", perm("create_record")(http.HandlerFunc(recordHandler.Create)))
	mux.Handle("GET /api/vehicles/{id}/records", perm("view_records")(http.HandlerFunc(recordHandler.List)))
	mux.Handle("PUT /api/records/{id}", perm("update_record")(http.HandlerFunc(recordHandler.Update)))
	mux.Handle("DELETE /api/records/{id}", perm("delete_record")(http.HandlerFunc(recordHandler.Delete)))

	mux.Handle("GET /api/vehicles/{id}/predictions", perm("view_predictions")(http.HandlerFunc(maintenanceHandler.Predictions)))
	mux.Handle("GET /api/vehicles/{id}/alerts", perm("view_alerts")(http.HandlerFunc(maintenanceHandler.Alerts)))

	rateLimiter := middleware.NewRateLimitMiddleware()
	return rateLimiter.RateLimit(300, 60)(authMW.Authenticate(mux))
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "motorlog"
	}
	database := client.Database(dbName)

	store := &db.Store{
		Vehicles: &db.MongoVehicleCollection{Collection: database.Collection("vehicles")},
		Records:  &db.MongoServiceRecordCollection{Collection: database.Collection("service_records")},
		Items:    &db.MongoMaintenanceItemCollection{Collection: database.Collection("maintenance_items")},
		Users:    &db.MongoUserCollection{Collection: database.Collection("users")},
	}

	if brokerURL := os.Getenv("MQTT_BROKER_URL"); brokerURL != "" {
		clientID := os.Getenv("MQTT_CLIENT_ID")
		if clientID == "" {
			clientID = "motorlog-server"
		}
		publisher, err := notify.NewPublisher(brokerURL, clientID, "motorlog/reminders")
		if err != nil {
			log.WithError(err).Warn("MQTT unavailable, reminders disabled")
		} else {
			defer publisher.Close()
			store.Notifier = publisher
			log.WithField("broker", brokerURL).Info("reminder publisher connected")
		}
	}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	if err := http.ListenAndServe(":"+port, newRouter(store, authService)); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
