package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/geocode"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Nominatim, OSRM, Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := config.Get("PORT", "8080")
	osrmURL := config.Get("OSRM_ENDPOINT", "")
	nominatimURL := config.Get("NOMINATIM_ENDPOINT", "")
	redisAddr := config.Get("REDIS_ADDR", "")

	fuelEconomy, err := config.GetFloat("FUEL_ECONOMY", 10)
	if err != nil {
		log.Fatal(err)
	}
	maxFuelRange, err := config.GetFloat("MAX_FUEL_RANGE", 500)
	if err != nil {
		log.Fatal(err)
	}

	vehicle := domain.Vehicle{
		FuelEconomyMPG: fuelEconomy,
		MaxRangeMiles:  maxFuelRange,
	}
	if err := vehicle.Validate(); err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Schema init is idempotent; running it on startup keeps local and
	// fresh deployments working without a separate migration step.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	var geocoder ports.Geocoder = geocode.NewNominatimGeocoder(nominatimURL)
	var router ports.Router = routing.NewOSRMRouter(osrmURL)

	// Redis caching of geocode/route lookups is optional; the service is
	// correct without it, just slower on repeated routes.
	if redisAddr != "" {
		kv, err := cache.NewRedisCache(redisAddr, cache.DefaultTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer kv.Close()

		geocoder = cache.NewCachedGeocoder(geocoder, kv)
		router = cache.NewCachedRouter(router, kv)
		log.Printf("redis cache enabled addr=%s", redisAddr)
	}

	stationRepo := repositories.NewPostgresStationRepository(database)
	planRepo := repositories.NewPostgresPlanRepository(database)

	selector := services.NewStationSelector(stationRepo)
	builder, err := services.NewPlanBuilder(selector, vehicle)
	if err != nil {
		log.Fatal(err)
	}

	handler := api.NewRouter(geocoder, router, builder, planRepo, stationRepo)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
