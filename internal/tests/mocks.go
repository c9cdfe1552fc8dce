package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"rentfleet/internal/domain"
	"rentfleet/internal/redis"
	"rentfleet/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount             int32
	UpdateCallCount             int32
	UpdateAvailabilityCallCount int32
	DeleteCallCount             int32

	// Error injection
	CreateError             error
	UpdateError             error
	UpdateAvailabilityError error
	DeleteError             error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.RegistrationNumber == vehicle.RegistrationNumber {
			return repository.ErrDuplicate
		}
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error) {
	// Row locking is the unit of work's concern; the data access is the same.
	return m.GetByID(ctx, id)
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, v := range m.vehicles {
		if v.ID != vehicle.ID && v.RegistrationNumber == vehicle.RegistrationNumber {
			return repository.ErrDuplicate
		}
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) UpdateAvailability(ctx context.Context, id string, status domain.AvailabilityStatus) error {
	atomic.AddInt32(&m.UpdateAvailabilityCallCount, 1)
	if m.UpdateAvailabilityError != nil {
		return m.UpdateAvailabilityError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.Availability = status
	return nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

// GetVehicle returns the vehicle by ID (for test assertions).
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// CountVehicles returns the number of vehicles.
func (m *MockVehicleRepository) CountVehicles() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vehicles)
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository. The
// detailed listings join against the linked mock user and vehicle
// repositories the same way the SQL queries join tables.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	userRepo    *MockUserRepository
	vehicleRepo *MockVehicleRepository

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockBookingRepository creates a new mock booking repository linked to
// the given user and vehicle repositories for listing enrichment.
func NewMockBookingRepository(userRepo *MockUserRepository, vehicleRepo *MockVehicleRepository) *MockBookingRepository {
	return &MockBookingRepository{
		bookings:    make(map[string]*domain.Booking),
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return m.GetByID(ctx, id)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.Status = status
	return nil
}

func (m *MockBookingRepository) GetAllDetailed(ctx context.Context) ([]*domain.BookingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.BookingDetail, 0, len(m.bookings))
	for _, b := range m.bookings {
		result = append(result, m.detail(b, true))
	}
	sortDetailsNewestFirst(result)
	return result, nil
}

func (m *MockBookingRepository) GetByCustomerDetailed(ctx context.Context, customerID string) ([]*domain.BookingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.BookingDetail, 0)
	for _, b := range m.bookings {
		if b.CustomerID == customerID {
			result = append(result, m.detail(b, false))
		}
	}
	sortDetailsNewestFirst(result)
	return result, nil
}

func (m *MockBookingRepository) detail(b *domain.Booking, withCustomer bool) *domain.BookingDetail {
	detail := &domain.BookingDetail{Booking: *b}
	if withCustomer && m.userRepo != nil {
		if user := m.userRepo.GetUser(b.CustomerID); user != nil {
			detail.CustomerName = user.Name
			detail.CustomerEmail = user.Email
		}
	}
	if m.vehicleRepo != nil {
		if vehicle := m.vehicleRepo.GetVehicle(b.VehicleID); vehicle != nil {
			detail.VehicleName = vehicle.Name
			detail.RegistrationNumber = vehicle.RegistrationNumber
			detail.VehicleCategory = vehicle.Category
		}
	}
	return detail
}

func sortDetailsNewestFirst(details []*domain.BookingDetail) {
	sort.Slice(details, func(i, j int) bool {
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})
}

// GetBooking returns the booking by ID (for test assertions).
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// CountBookings returns the number of bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// CountBookingsWithStatus counts bookings in the given status.
func (m *MockBookingRepository) CountBookingsWithStatus(status domain.BookingStatus) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, b := range m.bookings {
		if b.Status == status {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	// Store a copy so later caller-side mutation cannot reach the record.
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, u := range m.users {
		if u.ID != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// GetUser returns the user by ID (for test assertions).
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory. A
// single mutex is held from Begin until Commit or Rollback, so concurrent
// units of work serialize against each other exactly as row-locked
// transactions do against the same vehicle row.
type MockUnitOfWorkFactory struct {
	txMu sync.Mutex

	VehicleRepo *MockVehicleRepository
	BookingRepo *MockBookingRepository

	// Counters for verification
	BeginCallCount    int32
	CommitCallCount   int32
	RollbackCallCount int32

	// Error injection
	BeginError  error
	CommitError error
}

// NewMockUnitOfWorkFactory creates a new mock factory over the given
// repositories.
func NewMockUnitOfWorkFactory(vehicleRepo *MockVehicleRepository, bookingRepo *MockBookingRepository) *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{
		VehicleRepo: vehicleRepo,
		BookingRepo: bookingRepo,
	}
}

func (f *MockUnitOfWorkFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	atomic.AddInt32(&f.BeginCallCount, 1)
	if f.BeginError != nil {
		return nil, f.BeginError
	}
	f.txMu.Lock()
	return &mockUnitOfWork{factory: f}, nil
}

type mockUnitOfWork struct {
	factory *MockUnitOfWorkFactory
	done    bool
}

func (u *mockUnitOfWork) Vehicles() repository.VehicleRepository {
	return u.factory.VehicleRepo
}

func (u *mockUnitOfWork) Bookings() repository.BookingRepository {
	return u.factory.BookingRepo
}

func (u *mockUnitOfWork) Commit() error {
	atomic.AddInt32(&u.factory.CommitCallCount, 1)
	if u.factory.CommitError != nil {
		u.release()
		return u.factory.CommitError
	}
	u.release()
	return nil
}

func (u *mockUnitOfWork) Rollback() error {
	atomic.AddInt32(&u.factory.RollbackCallCount, 1)
	u.release()
	return nil
}

func (u *mockUnitOfWork) release() {
	if !u.done {
		u.done = true
		u.factory.txMu.Unlock()
	}
}

// ──────────────────────────────────────────────
// MOCK VEHICLE CACHE
// ──────────────────────────────────────────────

// MockVehicleCache is a mock implementation of VehicleCacheInterface.
type MockVehicleCache struct {
	mu      sync.RWMutex
	entries map[string]*redis.CachedVehicle

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
}

// NewMockVehicleCache creates a new mock vehicle cache.
func NewMockVehicleCache() *MockVehicleCache {
	return &MockVehicleCache{
		entries: make(map[string]*redis.CachedVehicle),
	}
}

func (m *MockVehicleCache) GetVehicle(ctx context.Context, id string) (*redis.CachedVehicle, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cached, ok := m.entries[id]
	if !ok {
		return nil, nil // Cache miss.
	}
	copy := *cached
	return &copy, nil
}

func (m *MockVehicleCache) SetVehicle(ctx context.Context, vehicle *redis.CachedVehicle) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleCache) InvalidateVehicle(ctx context.Context, id string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// HasEntry checks whether the cache holds an entry for the vehicle.
func (m *MockVehicleCache) HasEntry(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[id]
	return ok
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
