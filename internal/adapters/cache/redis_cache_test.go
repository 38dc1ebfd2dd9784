package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewRedisCache(mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("new redis cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
	if err := c.Put(ctx, "geocode:new_york", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	var got domain.Coordinates
	hit, err := c.Get(ctx, "geocode:new_york", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got domain.Coordinates
	hit, err := c.Get(context.Background(), "geocode:missing", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Error("expected miss for absent key")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "route:k", ports.RouteResult{DistanceMeters: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	var got ports.RouteResult
	hit, err := c.Get(ctx, "route:k", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Error("expected entry to expire after TTL")
	}
}

// countingGeocoder resolves every address to the same point.
type countingGeocoder struct {
	coords domain.Coordinates
	calls  int
}

func (g *countingGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	g.calls++
	return g.coords, nil
}

func TestCachedGeocoderHitsCacheOnRepeat(t *testing.T) {
	c, _ := newTestCache(t)
	inner := &countingGeocoder{coords: domain.Coordinates{Lat: 33.45, Lon: -112.07}}
	cached := NewCachedGeocoder(inner, c)
	ctx := context.Background()

	first, err := cached.Geocode(ctx, "Phoenix, AZ")
	if err != nil {
		t.Fatalf("first geocode: %v", err)
	}
	second, err := cached.Geocode(ctx, "phoenix,  az")
	if err != nil {
		t.Fatalf("second geocode: %v", err)
	}

	if first != second {
		t.Errorf("cached result %+v differs from original %+v", second, first)
	}
	// The second lookup differs only in case and spacing; key
	// normalization must fold it onto the cached entry.
	if inner.calls != 1 {
		t.Errorf("inner geocoder called %d times, want 1", inner.calls)
	}
}

// countingRouter returns a fixed two-point route.
type countingRouter struct {
	result ports.RouteResult
	calls  int
}

func (r *countingRouter) Route(ctx context.Context, start, end domain.Coordinates) (ports.RouteResult, error) {
	r.calls++
	return r.result, nil
}

func TestCachedRouterHitsCacheOnRepeat(t *testing.T) {
	c, _ := newTestCache(t)
	inner := &countingRouter{result: ports.RouteResult{
		DistanceMeters:  160934,
		DurationSeconds: 5400,
		Geometry: []domain.Coordinates{
			{Lat: 30, Lon: -100},
			{Lat: 31, Lon: -100},
		},
	}}
	cached := NewCachedRouter(inner, c)
	ctx := context.Background()

	start := domain.Coordinates{Lat: 30, Lon: -100}
	end := domain.Coordinates{Lat: 31, Lon: -100}

	if _, err := cached.Route(ctx, start, end); err != nil {
		t.Fatalf("first route: %v", err)
	}
	got, err := cached.Route(ctx, start, end)
	if err != nil {
		t.Fatalf("second route: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner router called %d times, want 1", inner.calls)
	}
	if got.DistanceMeters != inner.result.DistanceMeters || len(got.Geometry) != 2 {
		t.Errorf("cached route = %+v", got)
	}
}
