package usecase

import (
	"context"
	"testing"
	"time"

	"car-rental/internal/data/cache"
	"car-rental/internal/data/entity"
	"car-rental/pkg/apperror"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsAvailableNoBookings(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)

	available, err := env.availability.IsAvailable(context.Background(), car.ID, entity.NewInterval(mar(10, 10), mar(12, 10)), nil)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailableOverlapping(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)
	client := env.seedClient("a@example.com")
	env.seedBooking(car, client.ID, mar(10, 10), mar(12, 10), entity.BookingStatusReserved)

	available, err := env.availability.IsAvailable(context.Background(), car.ID, entity.NewInterval(mar(11, 0), mar(13, 0)), nil)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsAvailableBackToBack(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)
	client := env.seedClient("a@example.com")
	env.seedBooking(car, client.ID, mar(10, 10), mar(12, 10), entity.BookingStatusReserved)

	// A pickup at the exact dropoff instant of the existing booking is free.
	available, err := env.availability.IsAvailable(context.Background(), car.ID, entity.NewInterval(mar(12, 10), mar(14, 10)), nil)
	require.NoError(t, err)
	assert.True(t, available)

	// One second earlier overlaps.
	available, err = env.availability.IsAvailable(context.Background(), car.ID,
		entity.NewInterval(mar(12, 10).Add(-time.Second), mar(14, 10)), nil)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsAvailableIgnoresCancelled(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)
	client := env.seedClient("a@example.com")
	env.seedBooking(car, client.ID, mar(10, 10), mar(12, 10), entity.BookingStatusCancelled)

	available, err := env.availability.IsAvailable(context.Background(), car.ID, entity.NewInterval(mar(10, 10), mar(12, 10)), nil)
	require.NoError(t, err)
	assert.True(t, available, "cancelled bookings release their dates immediately")
}

func TestIsAvailableExcludesOwnBooking(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)
	client := env.seedClient("a@example.com")
	booking := env.seedBooking(car, client.ID, mar(10, 10), mar(12, 10), entity.BookingStatusReserved)

	// Without exclusion the booking blocks itself.
	available, err := env.availability.IsAvailable(context.Background(), car.ID, entity.NewInterval(mar(11, 10), mar(13, 10)), nil)
	require.NoError(t, err)
	assert.False(t, available)

	// Excluding it allows a reschedule that overlaps the original dates.
	available, err = env.availability.IsAvailable(context.Background(), car.ID, entity.NewInterval(mar(11, 10), mar(13, 10)), &booking.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailableUnknownCar(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.availability.IsAvailable(context.Background(), uuid.New(), entity.NewInterval(mar(10, 10), mar(12, 10)), nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestOccupiedDays(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)
	client := env.seedClient("a@example.com")
	env.seedBooking(car, client.ID, mar(10, 14), mar(12, 10), entity.BookingStatusReserved)
	env.seedBooking(car, client.ID, mar(12, 12), mar(13, 12), entity.BookingStatusReserved)
	env.seedBooking(car, client.ID, mar(20, 10), mar(21, 10), entity.BookingStatusCancelled)

	days, err := env.availability.OccupiedDays(context.Background(), car.ID)
	require.NoError(t, err)

	// March 12 is touched by both bookings but reported once; the cancelled
	// booking contributes nothing.
	assert.Equal(t, []string{"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13"}, days)
}

func TestOccupiedDaysEmpty(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)

	days, err := env.availability.OccupiedDays(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestOccupiedDaysUnknownCar(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.availability.OccupiedDays(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestOccupiedDaysServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	car := env.seedCar(50, entity.CarStatusAvailable)
	client := env.seedClient("a@example.com")
	env.seedBooking(car, client.ID, mar(10, 10), mar(11, 10), entity.BookingStatusReserved)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })
	availCache := cache.NewAvailabilityCache(redisClient, time.Minute, zap.NewNop())

	svc := NewAvailabilityService(env.repo, availCache, zap.NewNop())

	first, err := svc.OccupiedDays(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10", "2026-03-11"}, first)

	// A write that bypasses invalidation is not seen until the entry drops.
	env.seedBooking(car, client.ID, mar(20, 10), mar(21, 10), entity.BookingStatusReserved)

	cached, err := svc.OccupiedDays(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	availCache.Invalidate(context.Background(), car.ID)

	fresh, err := svc.OccupiedDays(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Len(t, fresh, 4)
}
