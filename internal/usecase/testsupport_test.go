package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"car-rental/internal/data/cache"
	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/pkg/lock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. They mirror the Postgres repositories closely
// enough to exercise the services: copies in and out, optimistic versioning,
// and goroutine safety for the concurrency tests.

type fakeCarRepo struct {
	mu   sync.Mutex
	cars []*entity.Car
}

func (f *fakeCarRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, car := range f.cars {
		if car.ID == id {
			c := *car
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCarRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Car
	for i := offset; i < len(f.cars) && len(out) < limit; i++ {
		c := *f.cars[i]
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeCarRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.cars)), nil
}

func (f *fakeCarRepo) UpdateStatus(_ context.Context, carID uuid.UUID, status entity.CarStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, car := range f.cars {
		if car.ID == carID {
			car.Status = status
		}
	}
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := *booking
	f.bookings = append(f.bookings, &b)
	return nil
}

func (f *fakeBookingRepo) find(id uuid.UUID) *entity.Booking {
	for _, b := range f.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.find(id); b != nil {
		c := *b
		return &c, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByCarID(_ context.Context, carID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.CarID == carID {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindActiveByCarID(_ context.Context, carID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.CarID == carID && b.Status != entity.BookingStatusCancelled {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByClientID(_ context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matching []*entity.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			matching = append(matching, b)
		}
	}
	var out []*entity.Booking
	for i := offset; i < len(matching) && len(out) < limit; i++ {
		c := *matching[i]
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByClientID(_ context.Context, clientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for i := offset; i < len(f.bookings) && len(out) < limit; i++ {
		c := *f.bookings[i]
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeBookingRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) UpdateStatusWithVersion(_ context.Context, bookingID uuid.UUID, version int64, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.find(bookingID)
	if b == nil || b.Version != version {
		return repository.ErrVersionConflict
	}
	b.Status = status
	b.Version++
	return nil
}

func (f *fakeBookingRepo) UpdateScheduleWithVersion(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.find(booking.ID)
	if b == nil || b.Version != booking.Version {
		return repository.ErrVersionConflict
	}
	b.PickupDateTime = booking.PickupDateTime
	b.DropOffDateTime = booking.DropOffDateTime
	b.PickupLocationID = booking.PickupLocationID
	b.DropOffLocationID = booking.DropOffLocationID
	b.TotalPrice = booking.TotalPrice
	b.Version++
	return nil
}

type fakeLocationRepo struct {
	locations []*entity.Location
}

func (f *fakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Location, error) {
	for _, l := range f.locations {
		if l.ID == id {
			c := *l
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) FindAll(_ context.Context) ([]*entity.Location, error) {
	out := make([]*entity.Location, 0, len(f.locations))
	for _, l := range f.locations {
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

type fakeClientRepo struct {
	clients []*entity.Client
}

func (f *fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	c := *client
	f.clients = append(f.clients, &c)
	return nil
}

func (f *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) FindByEmail(_ context.Context, email string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// testEnv wires the services against the in-memory repositories with a fixed
// clock.
type testEnv struct {
	cars      *fakeCarRepo
	bookings  *fakeBookingRepo
	locations *fakeLocationRepo
	clients   *fakeClientRepo
	repo      *repository.Repository

	now time.Time

	availability AvailabilityService
	reservation  *reservationService
	fleet        *fleetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cars:      &fakeCarRepo{},
		bookings:  &fakeBookingRepo{},
		locations: &fakeLocationRepo{},
		clients:   &fakeClientRepo{},
		now:       time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	env.repo = &repository.Repository{
		Car:      env.cars,
		Booking:  env.bookings,
		Location: env.locations,
		Client:   env.clients,
	}

	log := zap.NewNop()
	availCache := cache.NewAvailabilityCache(nil, time.Minute, log)
	clock := func() time.Time { return env.now }

	env.availability = NewAvailabilityService(env.repo, availCache, log)

	env.reservation = NewReservationService(env.repo, env.availability, lock.NewKeyedMutex(), availCache, nil, log).(*reservationService)
	env.reservation.clock = clock
	env.reservation.syncer.clock = clock

	env.fleet = NewFleetService(env.repo, env.availability, log).(*fleetService)
	env.fleet.syncer.clock = clock

	return env
}

func (e *testEnv) seedCar(pricePerDay float64, status entity.CarStatus) *entity.Car {
	car := &entity.Car{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: e.now,
			UpdatedAt: e.now,
		},
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2024,
		PricePerDay: pricePerDay,
		Status:      status,
	}
	e.cars.cars = append(e.cars.cars, car)
	return car
}

func (e *testEnv) seedLocation(name string) *entity.Location {
	location := &entity.Location{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: e.now,
			UpdatedAt: e.now,
		},
		Name:    name,
		Address: "1 Main St",
		City:    "Springfield",
	}
	e.locations.locations = append(e.locations.locations, location)
	return location
}

func (e *testEnv) seedClient(email string) *entity.Client {
	client := &entity.Client{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: e.now,
			UpdatedAt: e.now,
		},
		FullName:      "Test Client",
		Email:         email,
		DriverLicense: "DL-000111",
		IsActive:      true,
	}
	e.clients.clients = append(e.clients.clients, client)
	return client
}

func (e *testEnv) seedBooking(car *entity.Car, clientID uuid.UUID, pickup, dropoff time.Time, status entity.BookingStatus) *entity.Booking {
	location := e.seedLocation("Depot")
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: e.now,
			UpdatedAt: e.now,
		},
		OrderNumber:       "0042",
		CarID:             car.ID,
		ClientID:          clientID,
		PickupDateTime:    pickup,
		DropOffDateTime:   dropoff,
		PickupLocationID:  location.ID,
		DropOffLocationID: location.ID,
		TotalPrice:        car.PricePerDay,
		Status:            status,
		MadeBy:            entity.MadeByClient,
		Version:           1,
	}
	b := *booking
	e.bookings.bookings = append(e.bookings.bookings, &b)
	return booking
}

func mar(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func rfc3339(t time.Time) string {
	return t.Format(time.RFC3339)
}
