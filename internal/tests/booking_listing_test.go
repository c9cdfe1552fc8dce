package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentfleet/internal/domain"
	"rentfleet/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING LISTINGS
// ──────────────────────────────────────────────

func seedListingFixtures(env *bookingEnv) {
	env.userRepo.AddUser(&domain.User{
		ID:    "customer-1",
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Role:  domain.RoleCustomer,
	})
	env.userRepo.AddUser(&domain.User{
		ID:    "customer-2",
		Name:  "Ben Ortiz",
		Email: "ben@example.com",
		Role:  domain.RoleCustomer,
	})

	env.vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		Name:               "Toyota Corolla",
		Category:           domain.VehicleCategoryCar,
		RegistrationNumber: "KA-01-1234",
		DailyRentPrice:     50,
		Availability:       domain.AvailabilityBooked,
	})
	env.vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-2",
		Name:               "Honda Activa",
		Category:           domain.VehicleCategoryBike,
		RegistrationNumber: "KA-01-5678",
		DailyRentPrice:     15,
		Availability:       domain.AvailabilityBooked,
	})

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	env.bookingRepo.AddBooking(&domain.Booking{
		ID:         "booking-old",
		CustomerID: "customer-1",
		VehicleID:  "vehicle-1",
		TotalPrice: 150,
		Status:     domain.BookingStatusActive,
		CreatedAt:  base,
	})
	env.bookingRepo.AddBooking(&domain.Booking{
		ID:         "booking-mid",
		CustomerID: "customer-2",
		VehicleID:  "vehicle-2",
		TotalPrice: 45,
		Status:     domain.BookingStatusActive,
		CreatedAt:  base.Add(time.Hour),
	})
	env.bookingRepo.AddBooking(&domain.Booking{
		ID:         "booking-new",
		CustomerID: "customer-1",
		VehicleID:  "vehicle-2",
		TotalPrice: 30,
		Status:     domain.BookingStatusCancelled,
		CreatedAt:  base.Add(2 * time.Hour),
	})
}

func TestBookingListing_AdminSeesAllNewestFirst(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	seedListingFixtures(env)

	details, err := env.svc.ListBookings(context.Background(), "admin-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(details) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(details))
	}

	wantOrder := []string{"booking-new", "booking-mid", "booking-old"}
	for i, want := range wantOrder {
		if details[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, details[i].ID)
		}
	}
}

func TestBookingListing_AdminViewIncludesCustomerAndVehicle(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	seedListingFixtures(env)

	details, err := env.svc.ListBookings(context.Background(), "admin-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var detail *domain.BookingDetail
	for _, d := range details {
		if d.ID == "booking-old" {
			detail = d
		}
	}
	if detail == nil {
		t.Fatal("booking-old not in listing")
	}

	if detail.CustomerName != "Asha Rao" {
		t.Errorf("expected customer name Asha Rao, got %q", detail.CustomerName)
	}
	if detail.CustomerEmail != "asha@example.com" {
		t.Errorf("expected customer email asha@example.com, got %q", detail.CustomerEmail)
	}
	if detail.VehicleName != "Toyota Corolla" {
		t.Errorf("expected vehicle name Toyota Corolla, got %q", detail.VehicleName)
	}
	if detail.RegistrationNumber != "KA-01-1234" {
		t.Errorf("expected registration KA-01-1234, got %q", detail.RegistrationNumber)
	}
}

func TestBookingListing_CustomerSeesOnlyOwn(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	seedListingFixtures(env)

	details, err := env.svc.ListBookings(context.Background(), "customer-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(details) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(details))
	}
	for _, d := range details {
		if d.CustomerID != "customer-1" {
			t.Errorf("expected only customer-1 bookings, got one for %s", d.CustomerID)
		}
	}

	// Newest first within the customer's own bookings.
	if details[0].ID != "booking-new" || details[1].ID != "booking-old" {
		t.Errorf("expected [booking-new booking-old], got [%s %s]", details[0].ID, details[1].ID)
	}

	// Vehicle data is present in the customer view.
	if details[0].VehicleName != "Honda Activa" {
		t.Errorf("expected vehicle name Honda Activa, got %q", details[0].VehicleName)
	}
	if details[0].VehicleCategory != domain.VehicleCategoryBike {
		t.Errorf("expected category bike, got %q", details[0].VehicleCategory)
	}
}

func TestBookingListing_CustomerWithNoBookings_EmptyList(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	seedListingFixtures(env)

	details, err := env.svc.ListBookings(context.Background(), "customer-99", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(details) != 0 {
		t.Errorf("expected empty list, got %d bookings", len(details))
	}
}

func TestBookingListing_UnknownRole_Rejected(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()
	seedListingFixtures(env)

	_, err := env.svc.ListBookings(context.Background(), "someone", domain.Role("auditor"))
	if !errors.Is(err, service.ErrRoleNotAllowed) {
		t.Errorf("expected ErrRoleNotAllowed, got: %v", err)
	}
}

func TestBookingListing_CustomerWithoutID_Rejected(t *testing.T) {
	t.Parallel()

	env := newBookingEnv()

	_, err := env.svc.ListBookings(context.Background(), "", domain.RoleCustomer)
	if !errors.Is(err, service.ErrInvalidCustomerID) {
		t.Errorf("expected ErrInvalidCustomerID, got: %v", err)
	}
}
