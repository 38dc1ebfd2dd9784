package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// Postgres-backed implementation of the PlanRepository port. A plan and its
// stops are written in one transaction; stops are cascade-deleted with the
// plan.
type PostgresPlanRepository struct{ DB *sql.DB }

func NewPostgresPlanRepository(db *sql.DB) *PostgresPlanRepository {
	return &PostgresPlanRepository{DB: db}
}

// SavePlan stores the plan and its stops, setting generated IDs in place.
func (r *PostgresPlanRepository) SavePlan(ctx context.Context, plan *domain.RoutePlan) (err error) {
	defer obs.Time(ctx, "plans.SavePlan")(&err)

	if r.DB == nil {
		return errors.New("plan repository: DB is nil")
	}
	if plan == nil {
		return errors.New("save plan: plan is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertPlan := `
	INSERT INTO route_plans (
		start_location, end_location,
		start_lat, start_lon, end_lat, end_lon,
		total_distance, total_fuel_gallons, total_cost
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at;
	`

	err = tx.QueryRowContext(ctx, insertPlan,
		plan.StartLocation, plan.EndLocation,
		plan.StartCoords.Lat, plan.StartCoords.Lon,
		plan.EndCoords.Lat, plan.EndCoords.Lon,
		plan.TotalDistance, plan.TotalFuelGallons, plan.TotalCost,
	).Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("save plan: insert route_plans row: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO fuel_stops (
		plan_id, station_id, distance_from_start, fuel_gallons, cost, stop_number
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
	`)
	if err != nil {
		return fmt.Errorf("save plan: prepare stop insert: %w", err)
	}
	defer stmt.Close()

	for i := range plan.Stops {
		stop := &plan.Stops[i]
		stop.PlanID = plan.ID

		err := stmt.QueryRowContext(ctx,
			plan.ID, stop.Station.ID, stop.DistanceFromStart,
			stop.FuelGallons, stop.Cost, stop.StopNumber,
		).Scan(&stop.ID)
		if err != nil {
			return fmt.Errorf("save plan: insert stop %d: %w", stop.StopNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save plan: commit tx: %w", err)
	}

	return nil
}

// GetPlan retrieves a stored plan with its stops and station details,
// ordered by stop number.
func (r *PostgresPlanRepository) GetPlan(ctx context.Context, id int64) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "plans.GetPlan")(&err)

	if r.DB == nil {
		return nil, errors.New("plan repository: DB is nil")
	}

	planQuery := `
	SELECT id, start_location, end_location,
	       start_lat, start_lon, end_lat, end_lon,
	       total_distance, total_fuel_gallons, total_cost, created_at
	FROM route_plans
	WHERE id = $1;
	`

	plan := &domain.RoutePlan{Stops: []domain.FuelStop{}}
	err = r.DB.QueryRowContext(ctx, planQuery, id).Scan(
		&plan.ID, &plan.StartLocation, &plan.EndLocation,
		&plan.StartCoords.Lat, &plan.StartCoords.Lon,
		&plan.EndCoords.Lat, &plan.EndCoords.Lon,
		&plan.TotalDistance, &plan.TotalFuelGallons, &plan.TotalCost, &plan.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %d: %w", id, ports.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %d: query route_plans row: %w", id, err)
	}

	stopsQuery := `
	SELECT fs.id, fs.plan_id, fs.distance_from_start, fs.fuel_gallons, fs.cost, fs.stop_number,
	       st.id, st.opis_id, st.name, st.address, st.city, st.state, st.rack_id,
	       st.retail_price, st.latitude, st.longitude
	FROM fuel_stops fs
	JOIN fuel_stations st ON st.id = fs.station_id
	WHERE fs.plan_id = $1
	ORDER BY fs.stop_number ASC;
	`

	rows, err := r.DB.QueryContext(ctx, stopsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get plan %d: query fuel_stops: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var stop domain.FuelStop
		err := rows.Scan(
			&stop.ID, &stop.PlanID, &stop.DistanceFromStart, &stop.FuelGallons,
			&stop.Cost, &stop.StopNumber,
			&stop.Station.ID, &stop.Station.OPISID, &stop.Station.Name,
			&stop.Station.Address, &stop.Station.City, &stop.Station.State,
			&stop.Station.RackID, &stop.Station.RetailPrice,
			&stop.Station.Latitude, &stop.Station.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("get plan %d: scan stop row: %w", id, err)
		}
		plan.Stops = append(plan.Stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get plan %d: stop row iteration: %w", id, err)
	}

	return plan, nil
}

// ListPlans returns recent plans, newest first, without stop details.
func (r *PostgresPlanRepository) ListPlans(ctx context.Context, limit int) (_ []*domain.RoutePlan, err error) {
	defer obs.Time(ctx, "plans.ListPlans")(&err)

	if r.DB == nil {
		return nil, errors.New("plan repository: DB is nil")
	}
	if limit <= 0 {
		return []*domain.RoutePlan{}, nil
	}

	q := `
	SELECT id, start_location, end_location,
	       start_lat, start_lon, end_lat, end_lon,
	       total_distance, total_fuel_gallons, total_cost, created_at
	FROM route_plans
	ORDER BY created_at DESC, id DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: query route_plans table: %w", err)
	}
	defer rows.Close()

	plans := make([]*domain.RoutePlan, 0, limit)
	for rows.Next() {
		plan := &domain.RoutePlan{Stops: []domain.FuelStop{}}
		err := rows.Scan(
			&plan.ID, &plan.StartLocation, &plan.EndLocation,
			&plan.StartCoords.Lat, &plan.StartCoords.Lon,
			&plan.EndCoords.Lat, &plan.EndCoords.Lon,
			&plan.TotalDistance, &plan.TotalFuelGallons, &plan.TotalCost, &plan.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list plans: scan row: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}

	return plans, nil
}
