package repositories

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// Expected column headers in the OPIS truckstop price sheet.
const (
	colOPISID = "OPIS Truckstop ID"
	colName   = "Truckstop Name"
	colAddr   = "Address"
	colCity   = "City"
	colState  = "State"
	colRackID = "Rack ID"
	colPrice  = "Retail Price"
)

const importBatchSize = 100

type ImportStats struct {
	Imported int
	Skipped  int
	MinPrice float64
	MaxPrice float64
	AvgPrice float64
}

type stationRow struct {
	opisID string
	name   string
	addr   string
	city   string
	state  string
	rackID string
	price  float64
	lat    float64
	lon    float64
}

// ImportStationsCSV replaces the fuel_stations table with the contents of
// an OPIS price sheet. The sheet carries no coordinates, so each station is
// placed near its state centroid with up to a degree of jitter; pass a
// fixed seed for reproducible imports. Bad rows are logged and skipped,
// never fatal.
func ImportStationsCSV(db *sql.DB, csvPath string, seed int64) (ImportStats, error) {
	var stats ImportStats

	if db == nil {
		return stats, errors.New("import stations: DB is nil")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return stats, fmt.Errorf("import stations: open %q: %w", csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("import stations: read header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{colOPISID, colName, colState, colPrice} {
		if _, ok := cols[required]; !ok {
			return stats, fmt.Errorf("import stations: missing column %q", required)
		}
	}

	rng := rand.New(rand.NewSource(seed))

	// Full refresh: the sheet is the source of truth for station data.
	if _, err := db.Exec(`DELETE FROM fuel_stations;`); err != nil {
		return stats, fmt.Errorf("import stations: clear fuel_stations: %w", err)
	}

	priceSum := 0.0
	stats.MinPrice = math.Inf(1)
	stats.MaxPrice = math.Inf(-1)

	batch := make([]stationRow, 0, importBatchSize)
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Printf("import stations: line %d: %v, skipping", line, err)
			stats.Skipped++
			continue
		}

		row, err := parseStationRow(record, cols, rng)
		if err != nil {
			log.Printf("import stations: line %d: %v, skipping", line, err)
			stats.Skipped++
			continue
		}

		batch = append(batch, row)
		if len(batch) >= importBatchSize {
			if err := insertStationBatch(db, batch); err != nil {
				return stats, fmt.Errorf("import stations: %w", err)
			}
			batch = batch[:0]
		}

		stats.Imported++
		priceSum += row.price
		stats.MinPrice = math.Min(stats.MinPrice, row.price)
		stats.MaxPrice = math.Max(stats.MaxPrice, row.price)
	}

	if len(batch) > 0 {
		if err := insertStationBatch(db, batch); err != nil {
			return stats, fmt.Errorf("import stations: %w", err)
		}
	}

	if stats.Imported > 0 {
		stats.AvgPrice = priceSum / float64(stats.Imported)
	} else {
		stats.MinPrice, stats.MaxPrice = 0, 0
	}

	return stats, nil
}

func parseStationRow(record []string, cols map[string]int, rng *rand.Rand) (stationRow, error) {
	get := func(col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := get(colName)
	if name == "" {
		return stationRow{}, errors.New("empty truckstop name")
	}

	price, err := strconv.ParseFloat(get(colPrice), 64)
	if err != nil {
		return stationRow{}, fmt.Errorf("parse retail price %q: %w", get(colPrice), err)
	}
	if price <= 0 {
		return stationRow{}, fmt.Errorf("non-positive retail price %v", price)
	}

	state := strings.ToUpper(get(colState))
	if len(state) > 2 {
		state = state[:2]
	}

	centroid, ok := stateCentroids[state]
	if !ok {
		centroid = fallbackCentroid
	}

	return stationRow{
		opisID: get(colOPISID),
		name:   name,
		addr:   get(colAddr),
		city:   get(colCity),
		state:  state,
		rackID: get(colRackID),
		price:  price,
		lat:    round6(centroid[0] + rng.Float64()*2 - 1),
		lon:    round6(centroid[1] + rng.Float64()*2 - 1),
	}, nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func insertStationBatch(db *sql.DB, batch []stationRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("insert batch: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT INTO fuel_stations (
		opis_id, name, address, city, state, rack_id, retail_price, latitude, longitude
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`)
	if err != nil {
		return fmt.Errorf("insert batch: prepare: %w", err)
	}
	defer stmt.Close()

	for _, row := range batch {
		_, err := stmt.Exec(
			row.opisID, row.name, row.addr, row.city, row.state,
			row.rackID, row.price, row.lat, row.lon,
		)
		if err != nil {
			return fmt.Errorf("insert batch: station %q: %w", row.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert batch: commit tx: %w", err)
	}
	return nil
}
