package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/domain"
	"rentfleet/internal/redis"
	"rentfleet/internal/repository"
)

// VehicleService handles vehicle registry operations. The registry never
// touches availability after creation; flips belong to the booking engine.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	cacheStore  redis.VehicleCacheInterface
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository, cacheStore redis.VehicleCacheInterface) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		cacheStore:  cacheStore,
	}
}

// CreateVehicleRequest contains the parameters for registering a vehicle.
type CreateVehicleRequest struct {
	Name               string
	Category           string
	RegistrationNumber string
	DailyRentPrice     float64
}

// CreateVehicle registers a new vehicle in the fleet, available for booking.
func (s *VehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if req.Name == "" {
		return nil, ErrInvalidVehicleName
	}

	category, err := ValidateVehicleCategory(req.Category)
	if err != nil {
		return nil, err
	}

	if req.RegistrationNumber == "" {
		return nil, ErrInvalidRegistrationNumber
	}

	if req.DailyRentPrice <= 0 {
		return nil, ErrInvalidDailyPrice
	}

	vehicle := &domain.Vehicle{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		Category:           category,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		Availability:       domain.AvailabilityAvailable,
		CreatedAt:          time.Now(),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateRegistration
		}
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID, serving from cache when possible.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetVehicle(ctx, vehicleID)
		if err == nil && cached != nil {
			return cachedToVehicle(cached), nil
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	s.cacheVehicleAsync(vehicle)

	return vehicle, nil
}

// ListVehicles retrieves all vehicles, newest first.
func (s *VehicleService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}

// UpdateVehicleRequest contains the optional fields of a partial vehicle
// update. Nil fields are left untouched. Availability is deliberately not
// patchable; only booking transitions flip it.
type UpdateVehicleRequest struct {
	Name               *string
	Category           *string
	RegistrationNumber *string
	DailyRentPrice     *float64
}

// empty reports whether the patch carries no fields at all.
func (req UpdateVehicleRequest) empty() bool {
	return req.Name == nil && req.Category == nil && req.RegistrationNumber == nil && req.DailyRentPrice == nil
}

// UpdateVehicle merges the supplied fields into an existing vehicle and
// re-validates the result. An empty patch is a no-op returning (nil, nil).
func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	if req.empty() {
		return nil, nil
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrInvalidVehicleName
		}
		vehicle.Name = *req.Name
	}

	if req.Category != nil {
		category, err := ValidateVehicleCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		vehicle.Category = category
	}

	if req.RegistrationNumber != nil {
		if *req.RegistrationNumber == "" {
			return nil, ErrInvalidRegistrationNumber
		}
		vehicle.RegistrationNumber = *req.RegistrationNumber
	}

	if req.DailyRentPrice != nil {
		if *req.DailyRentPrice <= 0 {
			return nil, ErrInvalidDailyPrice
		}
		vehicle.DailyRentPrice = *req.DailyRentPrice
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateRegistration
		}
		return nil, err
	}

	s.invalidateVehicleCache(ctx, vehicleID)

	return vehicle, nil
}

// DeleteVehicle removes a vehicle; its bookings go with it via the storage
// cascade.
func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return ErrInvalidVehicleID
	}

	if err := s.vehicleRepo.Delete(ctx, vehicleID); err != nil {
		return err
	}

	s.invalidateVehicleCache(ctx, vehicleID)

	return nil
}

// ValidateVehicleCategory validates a vehicle category string.
func ValidateVehicleCategory(category string) (domain.VehicleCategory, error) {
	switch domain.VehicleCategory(category) {
	case domain.VehicleCategoryCar, domain.VehicleCategoryBike,
		domain.VehicleCategoryVan, domain.VehicleCategorySUV:
		return domain.VehicleCategory(category), nil
	default:
		return "", ErrInvalidVehicleCategory
	}
}

// cacheVehicleAsync caches a vehicle asynchronously (fire and forget).
func (s *VehicleService) cacheVehicleAsync(vehicle *domain.Vehicle) {
	if s.cacheStore == nil {
		return
	}
	go func() {
		cached := &redis.CachedVehicle{
			ID:                 vehicle.ID,
			Name:               vehicle.Name,
			Category:           string(vehicle.Category),
			RegistrationNumber: vehicle.RegistrationNumber,
			DailyRentPrice:     vehicle.DailyRentPrice,
			Availability:       string(vehicle.Availability),
		}
		_ = s.cacheStore.SetVehicle(context.Background(), cached)
	}()
}

// invalidateVehicleCache invalidates a vehicle's cache entry.
func (s *VehicleService) invalidateVehicleCache(ctx context.Context, vehicleID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateVehicle(ctx, vehicleID)
}

// cachedToVehicle converts a cached vehicle to a domain vehicle.
func cachedToVehicle(cached *redis.CachedVehicle) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 cached.ID,
		Name:               cached.Name,
		Category:           domain.VehicleCategory(cached.Category),
		RegistrationNumber: cached.RegistrationNumber,
		DailyRentPrice:     cached.DailyRentPrice,
		Availability:       domain.AvailabilityStatus(cached.Availability),
	}
}
