package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"fuel-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the StationIndex and StationRepository
// ports. Range filtering rides on the (latitude, longitude, retail_price)
// index created by InitSchema.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

// QueryBox returns all priced, located stations inside the bounding box.
func (r *PostgresStationRepository) QueryBox(ctx context.Context, box geo.BoundingBox) (_ []domain.FuelStation, err error) {
	defer obs.Time(ctx, "stations.QueryBox")(&err)

	if r.DB == nil {
		return nil, errors.New("station repository: DB is nil")
	}

	q := `
	SELECT id, opis_id, name, address, city, state, rack_id, retail_price, latitude, longitude
	FROM fuel_stations
	WHERE retail_price IS NOT NULL
	  AND latitude IS NOT NULL
	  AND longitude IS NOT NULL
	  AND latitude BETWEEN $1 AND $2
	  AND longitude BETWEEN $3 AND $4;
	`

	rows, err := r.DB.QueryContext(ctx, q, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("query stations: box query: %w", err)
	}
	defer rows.Close()

	return scanStations(rows)
}

// ListStations returns stations ordered by retail price ascending, cheapest
// first, with id as a deterministic tie-breaker.
func (r *PostgresStationRepository) ListStations(ctx context.Context, limit, offset int) (_ []domain.FuelStation, err error) {
	defer obs.Time(ctx, "stations.ListStations")(&err)

	if r.DB == nil {
		return nil, errors.New("station repository: DB is nil")
	}
	if limit <= 0 {
		return []domain.FuelStation{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	q := `
	SELECT id, opis_id, name, address, city, state, rack_id, retail_price, latitude, longitude
	FROM fuel_stations
	WHERE retail_price IS NOT NULL
	ORDER BY retail_price ASC, id ASC
	LIMIT $1 OFFSET $2;
	`

	rows, err := r.DB.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stations: query fuel_stations table: %w", err)
	}
	defer rows.Close()

	return scanStations(rows)
}

func scanStations(rows *sql.Rows) ([]domain.FuelStation, error) {
	stations := make([]domain.FuelStation, 0, 64)
	for rows.Next() {
		var st domain.FuelStation
		err := rows.Scan(
			&st.ID, &st.OPISID, &st.Name, &st.Address, &st.City, &st.State,
			&st.RackID, &st.RetailPrice, &st.Latitude, &st.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("scan station row: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("station row iteration: %w", err)
	}

	return stations, nil
}
