package cache

import (
	"context"
	"fmt"
	"log"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// CachedRouter wraps a Router with the Redis cache, keyed on the endpoint
// coordinate pair. Coordinates are rounded to 5 decimal places (about one
// meter) so equivalent requests share a key.
type CachedRouter struct {
	Inner ports.Router
	Cache *RedisCache
}

func NewCachedRouter(inner ports.Router, cache *RedisCache) *CachedRouter {
	return &CachedRouter{Inner: inner, Cache: cache}
}

func routeKey(start, end domain.Coordinates) string {
	return fmt.Sprintf("route:%.5f_%.5f_%.5f_%.5f", start.Lon, start.Lat, end.Lon, end.Lat)
}

func (r *CachedRouter) Route(ctx context.Context, start, end domain.Coordinates) (ports.RouteResult, error) {
	key := routeKey(start, end)

	var cached ports.RouteResult
	hit, err := r.Cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("route cache read failed: %v", err)
	}
	if hit && len(cached.Geometry) >= 2 {
		return cached, nil
	}

	result, err := r.Inner.Route(ctx, start, end)
	if err != nil {
		return ports.RouteResult{}, err
	}

	if err := r.Cache.Put(ctx, key, result); err != nil {
		log.Printf("route cache write failed: %v", err)
	}
	return result, nil
}
