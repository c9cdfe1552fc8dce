package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/domain"
	"rentfleet/internal/redis"
	"rentfleet/internal/repository"
)

// BookingService is the booking lifecycle engine. Creation and status
// transitions each run inside a single unit of work so that the booking
// status and the vehicle's availability can never diverge.
type BookingService struct {
	uowFactory          repository.UnitOfWorkFactory
	bookingRepo         repository.BookingRepository
	cacheStore          redis.VehicleCacheInterface
	notificationService *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	uowFactory repository.UnitOfWorkFactory,
	bookingRepo repository.BookingRepository,
	cacheStore redis.VehicleCacheInterface,
	notificationService *NotificationService,
) *BookingService {
	return &BookingService{
		uowFactory:          uowFactory,
		bookingRepo:         bookingRepo,
		cacheStore:          cacheStore,
		notificationService: notificationService,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	CustomerID    string
	VehicleID     string
	RentStartDate time.Time
	RentEndDate   time.Time
}

// CreateBooking books a vehicle for a customer over a date range.
//
// The availability check, the booking insert and the vehicle flip happen in
// one transaction with the vehicle row locked, so of two concurrent attempts
// against the same vehicle exactly one succeeds and the other fails with
// ErrVehicleUnavailable.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}

	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	vehicle, err := uow.Vehicles().GetByIDForUpdate(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.Availability != domain.AvailabilityAvailable {
		err = ErrVehicleUnavailable
		return nil, err
	}

	// The vehicle must exist and be available before the range is judged.
	days := RentalDays(req.RentStartDate, req.RentEndDate)
	if days <= 0 {
		err = ErrInvalidDateRange
		return nil, err
	}

	booking := &domain.Booking{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		RentStartDate: req.RentStartDate,
		RentEndDate:   req.RentEndDate,
		TotalPrice:    TotalPrice(days, vehicle.DailyRentPrice),
		Status:        domain.BookingStatusActive,
		CreatedAt:     time.Now(),
	}

	if err = uow.Bookings().Create(ctx, booking); err != nil {
		return nil, err
	}

	if err = uow.Vehicles().UpdateAvailability(ctx, vehicle.ID, domain.AvailabilityBooked); err != nil {
		return nil, err
	}

	if err = uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateVehicleCache(ctx, vehicle.ID)

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingCreated(ctx, booking, vehicle)
	}

	return booking, nil
}

// ListBookings returns the bookings visible to the requester. Admins see
// every booking enriched with customer and vehicle data; customers see only
// their own, enriched with vehicle data. Any other role is rejected.
func (s *BookingService) ListBookings(ctx context.Context, requesterID string, role domain.Role) ([]*domain.BookingDetail, error) {
	switch role {
	case domain.RoleAdmin:
		return s.bookingRepo.GetAllDetailed(ctx)
	case domain.RoleCustomer:
		if requesterID == "" {
			return nil, ErrInvalidCustomerID
		}
		return s.bookingRepo.GetByCustomerDetailed(ctx, requesterID)
	default:
		return nil, ErrRoleNotAllowed
	}
}

// UpdateBookingStatusRequest contains the parameters for a status transition.
type UpdateBookingStatusRequest struct {
	BookingID   string
	RequesterID string
	Role        domain.Role
	Status      domain.BookingStatus
}

// UpdateBookingStatus applies a role-gated status transition:
//
//   - customers may cancel their own active booking, strictly before the
//     rental start date;
//   - admins may mark any booking returned unless it already is, including
//     a cancelled one (the vehicle flip is a no-op in that case).
//
// Both terminal states end the lifecycle; the vehicle becomes available
// again in the same transaction as the status change.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, req UpdateBookingStatusRequest) (*domain.Booking, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}

	if req.Status != domain.BookingStatusCancelled && req.Status != domain.BookingStatusReturned {
		return nil, ErrInvalidBookingStatus
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	booking, err := uow.Bookings().GetByIDForUpdate(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	switch req.Role {
	case domain.RoleCustomer:
		if req.Status != domain.BookingStatusCancelled {
			err = ErrRoleNotAllowed
			return nil, err
		}
		if booking.CustomerID != req.RequesterID {
			err = ErrBookingNotOwned
			return nil, err
		}
		// Only active → cancelled exists in the transition table.
		if !booking.Status.CanTransitionTo(req.Status) {
			err = ErrBookingNotActive
			return nil, err
		}
		if !time.Now().Before(booking.RentStartDate) {
			err = ErrCancelWindowClosed
			return nil, err
		}

	case domain.RoleAdmin:
		if req.Status != domain.BookingStatusReturned {
			err = ErrRoleNotAllowed
			return nil, err
		}
		// Returned is terminal; active and cancelled both transition to it.
		if !booking.Status.CanTransitionTo(req.Status) {
			err = ErrBookingAlreadyReturned
			return nil, err
		}

	default:
		err = ErrRoleNotAllowed
		return nil, err
	}

	if err = uow.Bookings().UpdateStatus(ctx, booking.ID, req.Status); err != nil {
		return nil, err
	}

	if err = uow.Vehicles().UpdateAvailability(ctx, booking.VehicleID, domain.AvailabilityAvailable); err != nil {
		return nil, err
	}

	if err = uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateVehicleCache(ctx, booking.VehicleID)

	booking.Status = req.Status

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingStatusChanged(ctx, booking)
	}

	return booking, nil
}

// invalidateVehicleCache invalidates a vehicle's cache entry after an
// availability flip.
func (s *BookingService) invalidateVehicleCache(ctx context.Context, vehicleID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateVehicle(ctx, vehicleID)
}
