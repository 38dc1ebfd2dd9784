package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// Canned PlanRepository serving a single stored plan.
type stubPlanRepo struct {
	plan *domain.RoutePlan
}

func (s *stubPlanRepo) SavePlan(ctx context.Context, plan *domain.RoutePlan) error {
	plan.ID = 1
	s.plan = plan
	return nil
}

func (s *stubPlanRepo) GetPlan(ctx context.Context, id int64) (*domain.RoutePlan, error) {
	if s.plan == nil || s.plan.ID != id {
		return nil, ports.ErrPlanNotFound
	}
	return s.plan, nil
}

func (s *stubPlanRepo) ListPlans(ctx context.Context, limit int) ([]*domain.RoutePlan, error) {
	if s.plan == nil {
		return []*domain.RoutePlan{}, nil
	}
	return []*domain.RoutePlan{s.plan}, nil
}

func storedPlan() *domain.RoutePlan {
	lat, lon := 35.0, -100.0
	return &domain.RoutePlan{
		ID:            1,
		StartLocation: "Phoenix, AZ",
		EndLocation:   "Denver, CO",
		StartCoords:   domain.Coordinates{Lat: 33.45, Lon: -112.07},
		EndCoords:     domain.Coordinates{Lat: 39.74, Lon: -104.99},
		TotalDistance: 850,
		TotalCost:     290.5,
		CreatedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Stops: []domain.FuelStop{{
			ID:     10,
			PlanID: 1,
			Station: domain.FuelStation{
				ID: 7, Name: "Test Stop", State: "NM",
				RetailPrice: 3.30, Latitude: &lat, Longitude: &lon,
			},
			DistanceFromStart: 425,
			FuelGallons:       42.5,
			Cost:              140.25,
			StopNumber:        1,
		}},
	}
}

func TestPlansMethodNotAllowed(t *testing.T) {
	h := &PlanHandler{Repo: &stubPlanRepo{}}

	req := httptest.NewRequest(http.MethodDelete, "/plans", nil)
	rec := httptest.NewRecorder()
	h.Plans(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow header = %q, want \"GET, POST\"", allow)
	}
}

func TestPlansCreateRejectsInvalidBody(t *testing.T) {
	h := &PlanHandler{Repo: &stubPlanRepo{}}

	for _, body := range []string{
		"{not json",
		`{"start_location": "A", "end_location": "B", "extra": true}`,
		`{"start_location": "  ", "end_location": "B"}`,
		`{"start_location": "A", "end_location": ""}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Plans(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestPlansListsStoredPlans(t *testing.T) {
	h := &PlanHandler{Repo: &stubPlanRepo{plan: storedPlan()}}

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	h.Plans(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.ListPlansResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(res.Plans))
	}
	if res.Plans[0].ID != 1 || res.Plans[0].StartLocation != "Phoenix, AZ" {
		t.Errorf("plan summary = %+v", res.Plans[0])
	}
}

func TestGetPlanByID(t *testing.T) {
	h := &PlanHandler{Repo: &stubPlanRepo{plan: storedPlan()}}

	req := httptest.NewRequest(http.MethodGet, "/plans/1", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.PlanResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ID != 1 || len(res.Stops) != 1 {
		t.Fatalf("plan = %+v", res)
	}
	if res.Stops[0].StopNumber != 1 || res.Stops[0].Station.ID != 7 {
		t.Errorf("stop = %+v", res.Stops[0])
	}
}

func TestGetPlanBadAndMissingIDs(t *testing.T) {
	h := &PlanHandler{Repo: &stubPlanRepo{plan: storedPlan()}}

	req := httptest.NewRequest(http.MethodGet, "/plans/abc", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/plans/999", nil)
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}
}
