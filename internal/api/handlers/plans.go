package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

// PlanHandler exposes fuel route planning and plan retrieval endpoints.
// It coordinates geocoding, routing, the planning core, and persistence.
type PlanHandler struct {
	Geocoder ports.Geocoder
	Router   ports.Router
	Builder  *services.PlanBuilder
	Repo     ports.PlanRepository
}

// Plans dispatches the /plans collection: POST creates a plan, GET lists
// recent ones.
func (h *PlanHandler) Plans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *PlanHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.StartLocation) == "" {
		writeError(w, r, http.StatusBadRequest, "start_location is required")
		return
	}
	if strings.TrimSpace(req.EndLocation) == "" {
		writeError(w, r, http.StatusBadRequest, "end_location is required")
		return
	}

	svcReq := services.PlanFuelRouteRequest{
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
	}

	plan, err := services.PlanFuelRoute(r.Context(), svcReq, h.Geocoder, h.Router, h.Builder, h.Repo)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationNotFound):
			writeError(w, r, http.StatusBadRequest, "could not find one or both locations")
		case errors.Is(err, services.ErrRouteUnavailable):
			writeError(w, r, http.StatusBadGateway, "could not calculate route")
		default:
			log.Printf("plan fuel route failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func (h *PlanHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := parsePositiveInt(r.URL.Query().Get("limit"), 20, 100)

	plans, err := h.Repo.ListPlans(r.Context(), limit)
	if err != nil {
		log.Printf("list plans failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlansResponse{Plans: make([]dto.PlanSummaryResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.PlanSummaryResponse{
			ID:            p.ID,
			StartLocation: p.StartLocation,
			EndLocation:   p.EndLocation,
			TotalDistance: p.TotalDistance,
			TotalCost:     p.TotalCost,
			CreatedAt:     p.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get serves /plans/{id}.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/plans/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := h.Repo.GetPlan(r.Context(), id)
	if errors.Is(err, ports.ErrPlanNotFound) {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		log.Printf("get plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func toPlanResponse(plan *domain.RoutePlan) dto.PlanResponse {
	stops := make([]dto.StopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.StopResponse{
			Station:           toStationResponse(s.Station),
			DistanceFromStart: s.DistanceFromStart,
			FuelGallons:       s.FuelGallons,
			Cost:              s.Cost,
			StopNumber:        s.StopNumber,
		})
	}

	return dto.PlanResponse{
		ID:               plan.ID,
		StartLocation:    plan.StartLocation,
		EndLocation:      plan.EndLocation,
		StartCoords:      plan.StartCoords.LatLonList(),
		EndCoords:        plan.EndCoords.LatLonList(),
		TotalDistance:    plan.TotalDistance,
		TotalFuelGallons: plan.TotalFuelGallons,
		TotalCost:        plan.TotalCost,
		CreatedAt:        plan.CreatedAt,
		Stops:            stops,
	}
}

func toStationResponse(st domain.FuelStation) dto.StationResponse {
	return dto.StationResponse{
		ID:          st.ID,
		Name:        st.Name,
		Address:     st.Address,
		City:        st.City,
		State:       st.State,
		RetailPrice: st.RetailPrice,
		Latitude:    st.Latitude,
		Longitude:   st.Longitude,
	}
}

// parsePositiveInt parses a query value, falling back on empty or invalid
// input and clamping to max.
func parsePositiveInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	if v > max {
		return max
	}
	return v
}
