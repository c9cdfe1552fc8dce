package redis

import "context"

// VehicleCacheInterface defines the interface for vehicle cache operations.
type VehicleCacheInterface interface {
	GetVehicle(ctx context.Context, id string) (*CachedVehicle, error)
	SetVehicle(ctx context.Context, vehicle *CachedVehicle) error
	InvalidateVehicle(ctx context.Context, id string) error
}

// Ensure concrete types implement interfaces.
var _ VehicleCacheInterface = (*CacheStore)(nil)
