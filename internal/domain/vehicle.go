package domain

import "fmt"

// Vehicle describes the fuel characteristics of the truck being routed.
// Both values are externally configured and injected into the planner.
type Vehicle struct {
	FuelEconomyMPG float64 // miles per gallon
	MaxRangeMiles  float64 // maximum miles on a full tank
}

func (v Vehicle) Validate() error {
	if v.FuelEconomyMPG <= 0 {
		return fmt.Errorf("vehicle: fuel economy must be positive, got %v", v.FuelEconomyMPG)
	}
	if v.MaxRangeMiles <= 0 {
		return fmt.Errorf("vehicle: max fuel range must be positive, got %v", v.MaxRangeMiles)
	}
	return nil
}

// FuelForDistance returns the gallons needed to cover the given miles.
func (v Vehicle) FuelForDistance(miles float64) float64 {
	return miles / v.FuelEconomyMPG
}
