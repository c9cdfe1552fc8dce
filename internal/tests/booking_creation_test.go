package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rentfleet/internal/domain"
	"rentfleet/internal/redis"
	"rentfleet/internal/repository"
	"rentfleet/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING CREATION
// ──────────────────────────────────────────────

// bookingEnv bundles the mocks behind a BookingService under test.
type bookingEnv struct {
	userRepo    *MockUserRepository
	vehicleRepo *MockVehicleRepository
	bookingRepo *MockBookingRepository
	factory     *MockUnitOfWorkFactory
	svc         *service.BookingService
}

func newBookingEnv() *bookingEnv {
	userRepo := NewMockUserRepository()
	vehicleRepo := NewMockVehicleRepository()
	bookingRepo := NewMockBookingRepository(userRepo, vehicleRepo)
	factory := NewMockUnitOfWorkFactory(vehicleRepo, bookingRepo)
	return &bookingEnv{
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		factory:     factory,
		svc:         service.NewBookingService(factory, bookingRepo, nil, nil),
	}
}

func availableVehicle(id string, dailyRate float64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 id,
		Name:               "Toyota Corolla",
		Category:           domain.VehicleCategoryCar,
		RegistrationNumber: "KA-01-" + id,
		DailyRentPrice:     dailyRate,
		Availability:       domain.AvailabilityAvailable,
		CreatedAt:          time.Now(),
	}
}

func TestBookingCreation_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	env.vehicleRepo.AddVehicle(availableVehicle("vehicle-1", 50))

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booking, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "vehicle-1",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if booking == nil {
		t.Fatal("expected booking to be created")
	}
	if booking.ID == "" {
		t.Error("expected booking ID to be set")
	}
	if booking.Status != domain.BookingStatusActive {
		t.Errorf("expected status %s, got %s", domain.BookingStatusActive, booking.Status)
	}

	// 3 days at 50 per day.
	if booking.TotalPrice != 150 {
		t.Errorf("expected total price 150, got %v", booking.TotalPrice)
	}

	stored := env.bookingRepo.GetBooking(booking.ID)
	if stored == nil {
		t.Fatal("expected booking to be stored in repository")
	}

	vehicle := env.vehicleRepo.GetVehicle("vehicle-1")
	if vehicle.Availability != domain.AvailabilityBooked {
		t.Errorf("expected vehicle to be booked, got %s", vehicle.Availability)
	}

	if env.factory.CommitCallCount != 1 {
		t.Errorf("expected exactly one commit, got %d", env.factory.CommitCallCount)
	}
}

func TestBookingCreation_OneDayRental(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	env.vehicleRepo.AddVehicle(availableVehicle("vehicle-1", 80))

	// End is the day after start, with times of day that would confuse a
	// naive duration division.
	start := time.Date(2026, 9, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, 9, 2, 0, 15, 0, 0, time.UTC)

	booking, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "vehicle-1",
		RentStartDate: start,
		RentEndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.TotalPrice != 80 {
		t.Errorf("expected one chargeable day (price 80), got %v", booking.TotalPrice)
	}
}

func TestBookingCreation_InvalidDateRange_Rejected(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{
			name:  "end before start",
			start: day.AddDate(0, 0, 5),
			end:   day,
		},
		{
			name:  "end equals start",
			start: day,
			end:   day,
		},
		{
			name:  "same calendar day different hours",
			start: day.Add(2 * time.Hour),
			end:   day.Add(20 * time.Hour),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newBookingEnv()
			env.vehicleRepo.AddVehicle(availableVehicle("vehicle-1", 50))

			_, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
				CustomerID:    "customer-1",
				VehicleID:     "vehicle-1",
				RentStartDate: tc.start,
				RentEndDate:   tc.end,
			})
			if !errors.Is(err, service.ErrInvalidDateRange) {
				t.Errorf("expected ErrInvalidDateRange, got: %v", err)
			}

			// The transaction is rolled back with nothing written.
			if env.factory.RollbackCallCount != 1 {
				t.Errorf("expected one rollback, got %d", env.factory.RollbackCallCount)
			}
			if env.bookingRepo.CountBookings() != 0 {
				t.Errorf("expected no bookings, got %d", env.bookingRepo.CountBookings())
			}
			if env.vehicleRepo.GetVehicle("vehicle-1").Availability != domain.AvailabilityAvailable {
				t.Error("expected vehicle availability to be unchanged")
			}
		})
	}
}

func TestBookingCreation_VehicleChecksPrecedeDateValidation(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing vehicle wins over bad range", func(t *testing.T) {
		t.Parallel()

		env := newBookingEnv()

		_, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
			CustomerID:    "customer-1",
			VehicleID:     "no-such-vehicle",
			RentStartDate: day.AddDate(0, 0, 5),
			RentEndDate:   day,
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("unavailable vehicle wins over bad range", func(t *testing.T) {
		t.Parallel()

		env := newBookingEnv()
		vehicle := availableVehicle("vehicle-1", 50)
		vehicle.Availability = domain.AvailabilityBooked
		env.vehicleRepo.AddVehicle(vehicle)

		_, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
			CustomerID:    "customer-1",
			VehicleID:     "vehicle-1",
			RentStartDate: day.AddDate(0, 0, 5),
			RentEndDate:   day,
		})
		if !errors.Is(err, service.ErrVehicleUnavailable) {
			t.Errorf("expected ErrVehicleUnavailable, got: %v", err)
		}
	})
}

func TestBookingCreation_MissingIDs_Rejected(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	env := newBookingEnv()

	_, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "",
		VehicleID:     "vehicle-1",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 2),
	})
	if !errors.Is(err, service.ErrInvalidCustomerID) {
		t.Errorf("expected ErrInvalidCustomerID, got: %v", err)
	}

	_, err = env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 2),
	})
	if !errors.Is(err, service.ErrInvalidVehicleID) {
		t.Errorf("expected ErrInvalidVehicleID, got: %v", err)
	}
}

func TestBookingCreation_VehicleNotFound(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "no-such-vehicle",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 2),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}

	if env.factory.RollbackCallCount != 1 {
		t.Errorf("expected one rollback, got %d", env.factory.RollbackCallCount)
	}
}

func TestBookingCreation_UnavailableVehicle_Rejected(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	vehicle := availableVehicle("vehicle-1", 50)
	vehicle.Availability = domain.AvailabilityBooked
	env.vehicleRepo.AddVehicle(vehicle)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "vehicle-1",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 2),
	})
	if !errors.Is(err, service.ErrVehicleUnavailable) {
		t.Errorf("expected ErrVehicleUnavailable, got: %v", err)
	}

	// Nothing written, vehicle untouched.
	if env.bookingRepo.CountBookings() != 0 {
		t.Errorf("expected no bookings, got %d", env.bookingRepo.CountBookings())
	}
	if env.vehicleRepo.GetVehicle("vehicle-1").Availability != domain.AvailabilityBooked {
		t.Error("expected vehicle availability to be unchanged")
	}
	if env.factory.RollbackCallCount != 1 {
		t.Errorf("expected one rollback, got %d", env.factory.RollbackCallCount)
	}
}

func TestBookingCreation_PriceFixedAtCreation(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	env.vehicleRepo.AddVehicle(availableVehicle("vehicle-1", 100))

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booking, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "vehicle-1",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later rate change must not touch the stored booking.
	env.vehicleRepo.GetVehicle("vehicle-1").DailyRentPrice = 500

	stored := env.bookingRepo.GetBooking(booking.ID)
	if stored.TotalPrice != 200 {
		t.Errorf("expected total price to stay 200, got %v", stored.TotalPrice)
	}
}

func TestBookingCreation_ConcurrentSameVehicle_ExactlyOneWins(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	env.vehicleRepo.AddVehicle(availableVehicle("vehicle-1", 50))

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req := func(customerID string) service.CreateBookingRequest {
		return service.CreateBookingRequest{
			CustomerID:    customerID,
			VehicleID:     "vehicle-1",
			RentStartDate: start,
			RentEndDate:   start.AddDate(0, 0, 3),
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = env.svc.CreateBooking(context.Background(), req("customer-1"))
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = env.svc.CreateBooking(context.Background(), req("customer-2"))
	}()
	wg.Wait()

	var succeeded, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrVehicleUnavailable):
			unavailable++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Errorf("expected exactly one booking to succeed, got %d", succeeded)
	}
	if unavailable != 1 {
		t.Errorf("expected exactly one ErrVehicleUnavailable, got %d", unavailable)
	}

	if env.bookingRepo.CountBookingsWithStatus(domain.BookingStatusActive) != 1 {
		t.Errorf("expected exactly one active booking, got %d",
			env.bookingRepo.CountBookingsWithStatus(domain.BookingStatusActive))
	}
	if env.vehicleRepo.GetVehicle("vehicle-1").Availability != domain.AvailabilityBooked {
		t.Error("expected vehicle to end up booked")
	}
}

func TestBookingCreation_BeginFailure_Propagates(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	env.vehicleRepo.AddVehicle(availableVehicle("vehicle-1", 50))
	env.factory.BeginError = ErrMockTimeout

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := env.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "vehicle-1",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 2),
	})
	if !errors.Is(err, ErrMockTimeout) {
		t.Errorf("expected ErrMockTimeout, got: %v", err)
	}
}

func TestBookingCreation_InvalidatesVehicleCache(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	vehicleRepo := NewMockVehicleRepository()
	bookingRepo := NewMockBookingRepository(userRepo, vehicleRepo)
	factory := NewMockUnitOfWorkFactory(vehicleRepo, bookingRepo)
	cache := NewMockVehicleCache()
	svc := service.NewBookingService(factory, bookingRepo, cache, nil)

	vehicleRepo.AddVehicle(availableVehicle("vehicle-1", 50))
	_ = cache.SetVehicle(context.Background(), &redis.CachedVehicle{
		ID:           "vehicle-1",
		Name:         "Toyota Corolla",
		Availability: string(domain.AvailabilityAvailable),
	})

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		VehicleID:     "vehicle-1",
		RentStartDate: start,
		RentEndDate:   start.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The stale "available" entry must be gone after the flip.
	if cache.HasEntry("vehicle-1") {
		t.Error("expected vehicle cache entry to be invalidated")
	}
}
