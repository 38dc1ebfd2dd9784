package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Safe to run repeatedly.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS fuel_stations (
		id BIGSERIAL PRIMARY KEY,
		opis_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		rack_id TEXT NOT NULL DEFAULT '',
		retail_price NUMERIC(5,3),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS route_plans (
		id BIGSERIAL PRIMARY KEY,
		start_location TEXT NOT NULL,
		end_location TEXT NOT NULL,
		start_lat DOUBLE PRECISION NOT NULL,
		start_lon DOUBLE PRECISION NOT NULL,
		end_lat DOUBLE PRECISION NOT NULL,
		end_lon DOUBLE PRECISION NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL,
		total_fuel_gallons DOUBLE PRECISION NOT NULL,
		total_cost NUMERIC(10,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS fuel_stops (
		id BIGSERIAL PRIMARY KEY,
		plan_id BIGINT NOT NULL REFERENCES route_plans(id) ON DELETE CASCADE,
		station_id BIGINT NOT NULL REFERENCES fuel_stations(id),
		distance_from_start DOUBLE PRECISION NOT NULL,
		fuel_gallons DOUBLE PRECISION NOT NULL,
		cost NUMERIC(8,2) NOT NULL,
		stop_number INTEGER NOT NULL
	);
	`

	// Bounding-box queries filter on latitude/longitude/retail_price.
	createStationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stations_lat_lon_price
	ON fuel_stations (latitude, longitude, retail_price);
	`

	createStopIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stops_plan_stop_number
	ON fuel_stops (plan_id, stop_number);
	`

	statements := []string{
		createStationsQuery,
		createPlansQuery,
		createStopsQuery,
		createStationIndexQuery,
		createStopIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
