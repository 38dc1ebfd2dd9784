package handlers

import (
	"log"
	"net/http"
	"strconv"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/ports"
)

// StationHandler exposes read-only station listing endpoints.
type StationHandler struct {
	Repo ports.StationRepository
}

// List serves /stations, cheapest stations first.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := parsePositiveInt(r.URL.Query().Get("limit"), 100, 1000)

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, r, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		offset = v
	}

	stations, err := h.Repo.ListStations(r.Context(), limit, offset)
	if err != nil {
		log.Printf("list stations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStationsResponse{
		Stations: make([]dto.StationResponse, 0, len(stations)),
	}
	for _, st := range stations {
		res.Stations = append(res.Stations, toStationResponse(st))
	}

	writeJSON(w, r, http.StatusOK, res)
}
