package dto

import "time"

type PlanRequest struct {
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
}

type StationResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	RetailPrice float64  `json:"retail_price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type StopResponse struct {
	Station           StationResponse `json:"station"`
	DistanceFromStart float64         `json:"distance_from_start"`
	FuelGallons       float64         `json:"fuel_gallons"`
	Cost              float64         `json:"cost"`
	StopNumber        int             `json:"stop_number"`
}

type PlanResponse struct {
	ID               int64          `json:"id"`
	StartLocation    string         `json:"start_location"`
	EndLocation      string         `json:"end_location"`
	StartCoords      []float64      `json:"start_coords"` // [lat, lon]
	EndCoords        []float64      `json:"end_coords"`   // [lat, lon]
	TotalDistance    float64        `json:"total_distance"`
	TotalFuelGallons float64        `json:"total_fuel_gallons"`
	TotalCost        float64        `json:"total_cost"`
	CreatedAt        time.Time      `json:"created_at"`
	Stops            []StopResponse `json:"fuel_stops"`
}

type PlanSummaryResponse struct {
	ID            int64     `json:"id"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	TotalDistance float64   `json:"total_distance"`
	TotalCost     float64   `json:"total_cost"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListPlansResponse struct {
	Plans []PlanSummaryResponse `json:"plans"`
}
