package service

import "errors"

var (
	// ErrInvalidVehicleName is returned when the vehicle name is empty.
	ErrInvalidVehicleName = errors.New("vehicle name is required")

	// ErrInvalidVehicleCategory is returned when the category is not one of
	// car, bike, van, SUV.
	ErrInvalidVehicleCategory = errors.New("invalid vehicle category")

	// ErrInvalidRegistrationNumber is returned when the registration number is empty.
	ErrInvalidRegistrationNumber = errors.New("registration number is required")

	// ErrInvalidDailyPrice is returned when the daily rent price is not positive.
	ErrInvalidDailyPrice = errors.New("daily rent price must be positive")

	// ErrDuplicateRegistration is returned when the registration number is
	// already taken by another vehicle.
	ErrDuplicateRegistration = errors.New("registration number already exists")

	// ErrInvalidVehicleID is returned when the vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidCustomerID is returned when the customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidBookingID is returned when the booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidDateRange is returned when the rental end date is not
	// strictly after the start date by calendar day.
	ErrInvalidDateRange = errors.New("rent end date must be after rent start date")

	// ErrVehicleUnavailable is returned when a booking is attempted against
	// a vehicle that is not available.
	ErrVehicleUnavailable = errors.New("vehicle is not available")

	// ErrInvalidBookingStatus is returned when a requested target status is
	// not cancelled or returned.
	ErrInvalidBookingStatus = errors.New("invalid booking status")

	// ErrRoleNotAllowed is returned when the requester's role does not
	// permit the requested action.
	ErrRoleNotAllowed = errors.New("role is not allowed to perform this action")

	// ErrBookingNotOwned is returned when a customer attempts to modify a
	// booking that belongs to someone else.
	ErrBookingNotOwned = errors.New("booking belongs to another customer")

	// ErrBookingNotActive is returned when a cancellation targets a booking
	// that is not active.
	ErrBookingNotActive = errors.New("only active bookings can be cancelled")

	// ErrBookingAlreadyReturned is returned when a booking is marked
	// returned a second time.
	ErrBookingAlreadyReturned = errors.New("booking is already marked as returned")

	// ErrCancelWindowClosed is returned when a cancellation is attempted on
	// or after the rental start date.
	ErrCancelWindowClosed = errors.New("bookings can only be cancelled before the start date")

	// ErrMissingUserFields is returned when a sign-up or profile update is
	// missing required fields.
	ErrMissingUserFields = errors.New("name, email, password, phone and role are required")

	// ErrInvalidUserRole is returned when the role is not admin or customer.
	ErrInvalidUserRole = errors.New("invalid user role")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials is returned when sign-in fails. The message is
	// deliberately identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
