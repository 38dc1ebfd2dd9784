package domain

// Represents a truck-stop fuel station imported from an OPIS price sheet.
//
// Stations are created and refreshed only by the bulk import tool and are
// read-only to the planning core. Latitude and longitude are nullable:
// stations without coordinates exist in listings but are excluded from
// route planning by the index query.
type FuelStation struct {
	ID          int64
	OPISID      string
	Name        string
	Address     string
	City        string
	State       string
	RackID      string
	RetailPrice float64 // dollars per gallon, 3 decimal places
	Latitude    *float64
	Longitude   *float64
}

// Position returns the station coordinates, reporting false when either
// coordinate is missing.
func (s *FuelStation) Position() (Coordinates, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lon: *s.Longitude, Lat: *s.Latitude}, true
}
