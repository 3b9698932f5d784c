package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/locks"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CapacityService is the capacity ledger. It is the only component
// allowed to change how many seats a schedule has given out, and every
// capacity-affecting write runs inside the schedule's lock so the
// booked total can never overshoot max participants.
type CapacityService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) error
	GetAvailableCapacity(ctx context.Context, scheduleID string) (int, error)

	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetScheduleBookings(ctx context.Context, scheduleID string) ([]response.BookingResponse, error)
	GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type capacityService struct {
	repo     *repository.Repository
	locks    *locks.Manager
	lockWait time.Duration
	log      *zap.Logger
}

func NewCapacityService(repo *repository.Repository, lockMgr *locks.Manager, lockWait time.Duration, log *zap.Logger) CapacityService {
	return &capacityService{
		repo:     repo,
		locks:    lockMgr,
		lockWait: lockWait,
		log:      log.With(zap.String("service", "capacity")),
	}
}

// CreateBooking admits a booking if the schedule still has room. Read
// of the booked total and the insert happen under the schedule lock,
// so concurrent admits against the same schedule are linearized.
func (s *capacityService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule ID format %s: %w", req.ScheduleID, err)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", req.CustomerID, err)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", req.CustomerID, ErrNotFound)
	}

	release, err := acquireScheduleLock(ctx, s.locks, scheduleID.String(), s.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	if schedule == nil || !schedule.IsBookable() {
		return nil, fmt.Errorf("schedule %s: %w", req.ScheduleID, ErrScheduleNotBookable)
	}

	booked, err := s.repo.Booking.SumActiveParticipants(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("sum booked participants: %w", err)
	}

	if booked+req.Participants > schedule.MaxParticipants {
		s.log.Info("Booking rejected, capacity exceeded",
			zap.String("schedule_id", req.ScheduleID),
			zap.Int("booked", booked),
			zap.Int("requested", req.Participants),
			zap.Int("max_participants", schedule.MaxParticipants),
		)
		return nil, fmt.Errorf("schedule %s has %d of %d seats left: %w",
			req.ScheduleID, schedule.MaxParticipants-booked, schedule.MaxParticipants, ErrCapacityExceeded)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:     utils.GenerateBookingRef(),
		ScheduleID:    scheduleID,
		CustomerID:    customerID,
		Participants:  req.Participants,
		Status:        entity.BookingStatusPending,
		PaymentStatus: "unpaid",
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("schedule_id", req.ScheduleID),
			zap.String("customer_id", req.CustomerID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("schedule_id", req.ScheduleID),
		zap.Int("participants", req.Participants),
		zap.Int("booked_after", booked+req.Participants),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// CancelBooking releases the booking's seats. Cancelling an already
// cancelled booking is a no-op, and the release happens at most once.
func (s *capacityService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	release, err := acquireScheduleLock(ctx, s.locks, booking.ScheduleID.String(), s.lockWait)
	if err != nil {
		return err
	}
	defer release()

	// Re-read under the lock; a concurrent cancel may have won.
	booking, err = s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("reference", booking.Reference),
		zap.Int("released", booking.Participants),
	)

	return nil
}

// GetAvailableCapacity is a pure read: max participants minus the
// seats held by non-cancelled bookings.
func (s *capacityService) GetAvailableCapacity(ctx context.Context, scheduleID string) (int, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("find schedule: %w", err)
	}
	if schedule == nil {
		return 0, fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
	}

	booked, err := s.repo.Booking.SumActiveParticipants(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("sum booked participants: %w", err)
	}

	available := schedule.MaxParticipants - booked
	if available < 0 {
		available = 0
	}

	return available, nil
}

func (s *capacityService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	resp := response.BookingToResponse(booking)
	s.decorateBooking(ctx, &resp, booking.ScheduleID)
	return &resp, nil
}

func (s *capacityService) GetScheduleBookings(ctx context.Context, scheduleID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
	}

	bookings, err := s.repo.Booking.FindByScheduleID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find schedule bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking)
	}

	return responses, nil
}

func (s *capacityService) GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get customer bookings",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return nil, fmt.Errorf("get customer bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count customer bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking)
		s.decorateBooking(ctx, &responses[i], booking.ScheduleID)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

// decorateBooking fills presentation fields from the schedule and
// tour. Lookup failures leave the fields empty rather than failing
// the read.
func (s *capacityService) decorateBooking(ctx context.Context, resp *response.BookingResponse, scheduleID uuid.UUID) {
	schedule, _ := s.repo.Schedule.FindByID(ctx, scheduleID)
	if schedule == nil {
		return
	}

	startsAt := schedule.StartsAt
	resp.StartsAt = &startsAt

	tour, _ := s.repo.Tour.FindByID(ctx, schedule.TourID)
	if tour != nil {
		resp.TourName = tour.Name
	}
}
