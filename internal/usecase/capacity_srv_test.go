package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/pkg/locks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCapacityService(store *fakeStore) CapacityService {
	return NewCapacityService(store.repository(), locks.NewManager(), 2*time.Second, zap.NewNop())
}

func TestCreateBooking(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	customer := store.addCustomer("alice")

	booking, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ScheduleID:   schedule.ID.String(),
		CustomerID:   customer.ID.String(),
		Participants: 4,
	})
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, schedule.ID.String(), booking.ScheduleID)
	assert.Equal(t, 4, booking.Participants)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.NotEmpty(t, booking.Reference)

	available, err := service.GetAvailableCapacity(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 6, available)
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	customer := store.addCustomer("alice")
	store.addBooking(schedule.ID, customer.ID, 8, entity.BookingStatusConfirmed)

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ScheduleID:   schedule.ID.String(),
		CustomerID:   customer.ID.String(),
		Participants: 3,
	})
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// A party that exactly fills the schedule is admitted.
	booking, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ScheduleID:   schedule.ID.String(),
		CustomerID:   customer.ID.String(),
		Participants: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, booking.Participants)
}

func TestCreateBookingCancelledSeatsAreFree(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	customer := store.addCustomer("alice")
	store.addBooking(schedule.ID, customer.ID, 8, entity.BookingStatusCancelled)

	booking, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ScheduleID:   schedule.ID.String(),
		CustomerID:   customer.ID.String(),
		Participants: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, booking.Participants)
}

func TestCreateBookingNotBookable(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	customer := store.addCustomer("alice")

	for _, status := range []entity.ScheduleStatus{
		entity.ScheduleStatusCancelled,
		entity.ScheduleStatusInProgress,
		entity.ScheduleStatusCompleted,
	} {
		schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, status)
		_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
			ScheduleID:   schedule.ID.String(),
			CustomerID:   customer.ID.String(),
			Participants: 1,
		})
		assert.ErrorIs(t, err, ErrScheduleNotBookable, "status %s", status)
	}
}

func TestCreateBookingUnknownCustomer(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ScheduleID:   schedule.ID.String(),
		CustomerID:   "b6c0f636-0e6a-4f5c-9e37-0e7b1c1f2a3d",
		Participants: 1,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

// Concurrent admits against one schedule must never oversell it, no
// matter how the goroutines interleave.
func TestCreateBookingConcurrent(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	customer := store.addCustomer("alice")

	const attempts = 50

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
				ScheduleID:   schedule.ID.String(),
				CustomerID:   customer.ID.String(),
				Participants: 1,
			})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
		}
	}
	assert.Equal(t, 10, succeeded)

	available, err := service.GetAvailableCapacity(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, available)
}

func TestCancelBooking(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	customer := store.addCustomer("alice")
	booking := store.addBooking(schedule.ID, customer.ID, 6, entity.BookingStatusConfirmed)

	require.NoError(t, service.CancelBooking(context.Background(), booking.ID.String()))

	available, err := service.GetAvailableCapacity(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 10, available)

	// Cancelling again is a no-op, not an error, and releases nothing
	// twice.
	require.NoError(t, service.CancelBooking(context.Background(), booking.ID.String()))

	available, err = service.GetAvailableCapacity(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 10, available)
}

func TestCancelBookingNotFound(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	err := service.CancelBooking(context.Background(), "b6c0f636-0e6a-4f5c-9e37-0e7b1c1f2a3d")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetAvailableCapacityClamped(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	customer := store.addCustomer("alice")

	// Capacity lowered after bookings were taken; available clamps at
	// zero instead of going negative.
	store.addBooking(schedule.ID, customer.ID, 12, entity.BookingStatusConfirmed)

	available, err := service.GetAvailableCapacity(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, available)
}

func TestGetCustomerBookings(t *testing.T) {
	store := newFakeStore()
	service := newTestCapacityService(store)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	alice := store.addCustomer("alice")
	bob := store.addCustomer("bob")
	store.addBooking(schedule.ID, alice.ID, 2, entity.BookingStatusConfirmed)
	store.addBooking(schedule.ID, alice.ID, 3, entity.BookingStatusPending)
	store.addBooking(schedule.ID, bob.ID, 1, entity.BookingStatusConfirmed)

	page, err := service.GetCustomerBookings(context.Background(), alice.ID.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 2, page.Pagination.Total)
	assert.Equal(t, "City Walk", page.Data[0].TourName)
}
