package cache

import (
	"context"
	"log"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// CachedGeocoder wraps a Geocoder with the Redis cache. Negative results
// are not cached so a transient provider miss never sticks for the TTL.
type CachedGeocoder struct {
	Inner ports.Geocoder
	Cache *RedisCache
}

func NewCachedGeocoder(inner ports.Geocoder, cache *RedisCache) *CachedGeocoder {
	return &CachedGeocoder{Inner: inner, Cache: cache}
}

func geocodeKey(address string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(address)), "_")
	return "geocode:" + norm
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	key := geocodeKey(address)

	var cached domain.Coordinates
	hit, err := g.Cache.Get(ctx, key, &cached)
	if err != nil {
		// Cache trouble must not fail the request.
		log.Printf("geocode cache read failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	coords, err := g.Inner.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if err := g.Cache.Put(ctx, key, coords); err != nil {
		log.Printf("geocode cache write failed: %v", err)
	}
	return coords, nil
}
