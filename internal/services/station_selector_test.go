package services

import (
	"context"
	"math"
	"testing"

	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

// degrees of latitude per mile along a meridian
var degPerMile = 180 / (math.Pi * geo.EarthRadiusMiles)

// stationAt places a station the given number of miles due north of origin.
func stationAt(id int64, price float64, origin domain.Coordinates, milesNorth float64) domain.FuelStation {
	lat := origin.Lat + milesNorth*degPerMile
	lon := origin.Lon
	return domain.FuelStation{
		ID:          id,
		Name:        "Test Stop",
		State:       "TX",
		RetailPrice: price,
		Latitude:    &lat,
		Longitude:   &lon,
	}
}

func TestSelectBestPriceDominantScoring(t *testing.T) {
	point := domain.Coordinates{Lat: 35, Lon: -100}

	// $3.00 at 40 miles scores 3.00 + (40/50)*0.5 = 3.40.
	// $3.10 at 2 miles scores 3.10 + (2/50)*0.5 = 3.12 and wins.
	index := repositories.NewMemoryStationIndex([]domain.FuelStation{
		stationAt(1, 3.00, point, 40),
		stationAt(2, 3.10, point, 2),
	})
	selector := NewStationSelector(index)

	best, err := selector.SelectBest(context.Background(), point, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best == nil {
		t.Fatal("expected a station, got nil")
	}
	if best.ID != 2 {
		t.Errorf("selected station %d, want 2 (nearby slightly pricier station)", best.ID)
	}
}

func TestSelectBestCheapestWinsAtSimilarDistance(t *testing.T) {
	point := domain.Coordinates{Lat: 35, Lon: -100}

	index := repositories.NewMemoryStationIndex([]domain.FuelStation{
		stationAt(1, 3.45, point, 10),
		stationAt(2, 3.20, point, 12),
		stationAt(3, 3.80, point, 8),
	})
	selector := NewStationSelector(index)

	best, err := selector.SelectBest(context.Background(), point, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best == nil || best.ID != 2 {
		t.Fatalf("selected %+v, want station 2 (cheapest)", best)
	}
}

func TestSelectBestDeterministicOnIdenticalStations(t *testing.T) {
	point := domain.Coordinates{Lat: 35, Lon: -100}

	// Same price and position: the stable sort must keep input order.
	index := repositories.NewMemoryStationIndex([]domain.FuelStation{
		stationAt(7, 3.00, point, 5),
		stationAt(8, 3.00, point, 5),
	})
	selector := NewStationSelector(index)

	for i := 0; i < 5; i++ {
		best, err := selector.SelectBest(context.Background(), point, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if best == nil || best.ID != 7 {
			t.Fatalf("run %d selected %+v, want station 7", i, best)
		}
	}
}

func TestSelectBestDiscardsBoxCornerBeyondRadius(t *testing.T) {
	point := domain.Coordinates{Lat: 35, Lon: -100}
	box := geo.BoxAround(point, 50)

	// A station near the box corner sits inside the bounding box but
	// roughly sqrt(2)*45 miles away, beyond the 50-mile radius.
	cornerLat := point.Lat + (box.MaxLat-point.Lat)*0.9
	cornerLon := point.Lon + (box.MaxLon-point.Lon)*0.9
	corner := domain.FuelStation{
		ID:          1,
		Name:        "Corner Stop",
		RetailPrice: 2.50,
		Latitude:    &cornerLat,
		Longitude:   &cornerLon,
	}
	if d := geo.Miles(point, domain.Coordinates{Lat: cornerLat, Lon: cornerLon}); d <= 50 {
		t.Fatalf("test setup: corner station only %v miles away", d)
	}

	index := repositories.NewMemoryStationIndex([]domain.FuelStation{
		corner,
		stationAt(2, 3.50, point, 30),
	})
	selector := NewStationSelector(index)

	best, err := selector.SelectBest(context.Background(), point, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best == nil || best.ID != 2 {
		t.Fatalf("selected %+v, want station 2 (corner station is outside the radius)", best)
	}
}

func TestSelectBestRetriesWithDoubledRadius(t *testing.T) {
	point := domain.Coordinates{Lat: 35, Lon: -100}

	// Nothing within 50 miles, one station at 80: the first query misses
	// and the single retry at radius 100 finds it.
	index := repositories.NewMemoryStationIndex([]domain.FuelStation{
		stationAt(1, 3.25, point, 80),
	})
	selector := NewStationSelector(index)

	best, err := selector.SelectBest(context.Background(), point, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best == nil || best.ID != 1 {
		t.Fatalf("selected %+v, want station 1 via doubled radius", best)
	}
	if index.Queries != 2 {
		t.Errorf("index queried %d times, want 2 (miss then retry)", index.Queries)
	}
}

func TestSelectBestNoneFound(t *testing.T) {
	point := domain.Coordinates{Lat: 35, Lon: -100}

	index := repositories.NewMemoryStationIndex([]domain.FuelStation{
		stationAt(1, 3.25, point, 300),
	})
	selector := NewStationSelector(index)

	best, err := selector.SelectBest(context.Background(), point, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best != nil {
		t.Fatalf("expected nil for a station 300 miles out, got %+v", best)
	}
}

func TestSelectBestSkipsStationsWithoutCoordinates(t *testing.T) {
	point := domain.Coordinates{Lat: 35, Lon: -100}

	noCoords := domain.FuelStation{ID: 1, Name: "Mystery Stop", RetailPrice: 1.00}
	index := repositories.NewMemoryStationIndex([]domain.FuelStation{
		noCoords,
		stationAt(2, 3.50, point, 10),
	})
	selector := NewStationSelector(index)

	best, err := selector.SelectBest(context.Background(), point, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best == nil || best.ID != 2 {
		t.Fatalf("selected %+v, want station 2", best)
	}
}
