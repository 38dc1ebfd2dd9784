package repositories

import (
	"context"
	"sort"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

// In-memory implementation of the StationIndex and StationRepository ports,
// used by tests and local experiments.
type MemoryStationIndex struct {
	Stations []domain.FuelStation
	Queries  int
}

func NewMemoryStationIndex(stations []domain.FuelStation) *MemoryStationIndex {
	return &MemoryStationIndex{Stations: stations}
}

func (m *MemoryStationIndex) QueryBox(ctx context.Context, box geo.BoundingBox) ([]domain.FuelStation, error) {
	m.Queries++

	out := make([]domain.FuelStation, 0, len(m.Stations))
	for _, st := range m.Stations {
		pos, ok := st.Position()
		if !ok {
			continue
		}
		if box.Contains(pos) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (m *MemoryStationIndex) ListStations(ctx context.Context, limit, offset int) ([]domain.FuelStation, error) {
	sorted := make([]domain.FuelStation, len(m.Stations))
	copy(sorted, m.Stations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RetailPrice != sorted[j].RetailPrice {
			return sorted[i].RetailPrice < sorted[j].RetailPrice
		}
		return sorted[i].ID < sorted[j].ID
	})

	if offset >= len(sorted) {
		return []domain.FuelStation{}, nil
	}
	sorted = sorted[offset:]
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}
