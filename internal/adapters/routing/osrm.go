// Package routing provides the OSRM implementation of the Router port.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/httpx"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

const defaultOSRMURL = "https://router.project-osrm.org"

// OSRMRouter fetches driving routes from an OSRM instance.
// Safe for concurrent use.
type OSRMRouter struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMRouter(baseURL string) *OSRMRouter {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOSRMURL
	}

	return &OSRMRouter{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route requests the full-overview GeoJSON route between two points and
// converts its [lon, lat] geometry into Coordinates.
func (r *OSRMRouter) Route(ctx context.Context, start, end domain.Coordinates) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s,%s;%s,%s",
		r.baseURL, r.profile,
		formatCoord(start.Lon), formatCoord(start.Lat),
		formatCoord(end.Lon), formatCoord(end.Lat),
	)

	resp, err := httpx.DoWithRetry(ctx, r.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("osrm route: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("osrm route: decode response: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.RouteResult{}, fmt.Errorf("osrm route: unexpected code %q", decoded.Code)
	}
	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("osrm route: no routes returned")
	}

	best := decoded.Routes[0]

	geometry := make([]domain.Coordinates, 0, len(best.Geometry.Coordinates))
	for i, pair := range best.Geometry.Coordinates {
		if len(pair) != 2 {
			return ports.RouteResult{}, fmt.Errorf("osrm route: geometry point %d has %d values", i, len(pair))
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}
	if len(geometry) < 2 {
		return ports.RouteResult{}, fmt.Errorf("osrm route: geometry has %d points, need at least 2", len(geometry))
	}

	return ports.RouteResult{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        geometry,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
