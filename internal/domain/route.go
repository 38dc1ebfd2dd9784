package domain

import "time"

// Represents a single refueling event along a planned route.
// A FuelStop assigns a specific station to a point along the route and
// records how much fuel is purchased there and at what cost.
type FuelStop struct {
	ID                int64
	PlanID            int64
	Station           FuelStation
	DistanceFromStart float64 // miles from route start, non-decreasing across a plan
	FuelGallons       float64
	Cost              float64 // FuelGallons * Station.RetailPrice
	StopNumber        int     // 1-based, strictly increasing, defines presentation order
}

// Represents the planned refueling schedule for a single driving route.
// A RoutePlan is the output of the fuel planning algorithm and describes the
// ordered sequence of fuel stops, along with aggregate distance, fuel, and
// cost figures. It is immutable planning data once finalized; only TotalCost
// is set at the end of planning.
type RoutePlan struct {
	ID               int64
	StartLocation    string
	EndLocation      string
	StartCoords      Coordinates
	EndCoords        Coordinates
	TotalDistance    float64 // miles
	TotalFuelGallons float64
	TotalCost        float64
	CreatedAt        time.Time
	Stops            []FuelStop
}

// AppendStop adds a refueling stop for the given station, assigning the next
// stop number and deriving the cost from the station's retail price.
func (p *RoutePlan) AppendStop(station FuelStation, distanceFromStart, fuelGallons float64) {
	p.Stops = append(p.Stops, FuelStop{
		Station:           station,
		DistanceFromStart: distanceFromStart,
		FuelGallons:       fuelGallons,
		Cost:              fuelGallons * station.RetailPrice,
		StopNumber:        len(p.Stops) + 1,
	})
}

// SumStopCosts returns the sum of all stop costs. A finalized plan's
// TotalCost equals this sum within floating-point tolerance.
func (p *RoutePlan) SumStopCosts() float64 {
	total := 0.0
	for _, s := range p.Stops {
		total += s.Cost
	}
	return total
}

// Finalize sets the aggregate cost from the accumulated stops.
func (p *RoutePlan) Finalize() {
	p.TotalCost = p.SumStopCosts()
}
