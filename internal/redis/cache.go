package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	vehicleCacheTTL = 5 * time.Minute
)

// CachedVehicle is the cached representation of a vehicle.
type CachedVehicle struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	RegistrationNumber string  `json:"registration_number"`
	DailyRentPrice     float64 `json:"daily_rent_price"`
	Availability       string  `json:"availability"`
}

// CacheStore handles caching of vehicle records in Redis. Entries are
// invalidated on every registry update and availability flip, so a stale
// read can last at most vehicleCacheTTL after a missed invalidation.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

func vehicleKey(id string) string {
	return fmt.Sprintf("vehicle:%s", id)
}

// GetVehicle retrieves a vehicle from cache. Returns nil on cache miss.
func (s *CacheStore) GetVehicle(ctx context.Context, id string) (*CachedVehicle, error) {
	data, err := s.client.Get(ctx, vehicleKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached CachedVehicle
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

// SetVehicle stores a vehicle in cache.
func (s *CacheStore) SetVehicle(ctx context.Context, vehicle *CachedVehicle) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, vehicleKey(vehicle.ID), data, vehicleCacheTTL).Err()
}

// InvalidateVehicle removes a vehicle from cache.
func (s *CacheStore) InvalidateVehicle(ctx context.Context, id string) error {
	return s.client.Del(ctx, vehicleKey(id)).Err()
}
