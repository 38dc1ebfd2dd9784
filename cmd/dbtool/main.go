package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/platform/db"
)

// dbtool initializes the database schema and optionally imports an OPIS
// truckstop price sheet into the fuel_stations table.
func main() {
	csvPath := flag.String("csv", "", "path to OPIS price sheet; empty skips the import")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for synthesized station coordinates")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *csvPath == "" {
		return
	}

	log.Printf("Importing stations from %s...", *csvPath)
	stats, err := repositories.ImportStationsCSV(database, *csvPath, *seed)
	if err != nil {
		log.Fatalf("station import failed: %v", err)
	}

	log.Printf("Imported %d stations (%d rows skipped)", stats.Imported, stats.Skipped)
	if stats.Imported > 0 {
		log.Printf("Price range: min=$%.3f avg=$%.3f max=$%.3f", stats.MinPrice, stats.AvgPrice, stats.MaxPrice)
	}
}
