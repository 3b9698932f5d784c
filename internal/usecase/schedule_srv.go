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

type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error)
	GetScheduleByID(ctx context.Context, scheduleID string) (*response.ScheduleDetailResponse, error)
	GetTourSchedules(ctx context.Context, tourID string) ([]response.ScheduleResponse, error)
	UpdateScheduleStatus(ctx context.Context, scheduleID string, req *request.UpdateScheduleStatusRequest) error
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

type scheduleService struct {
	repo     *repository.Repository
	locks    *locks.Manager
	lockWait time.Duration
	policy   utils.StaffingConfig
	log      *zap.Logger
}

func NewScheduleService(repo *repository.Repository, lockMgr *locks.Manager, lockWait time.Duration, policy utils.StaffingConfig, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:     repo,
		locks:    lockMgr,
		lockWait: lockWait,
		policy:   policy,
		log:      log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, fmt.Errorf("invalid tour ID format %s: %w", req.TourID, err)
	}

	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("check tour: %w", err)
	}
	if tour == nil {
		return nil, fmt.Errorf("tour %s: %w", req.TourID, ErrNotFound)
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_at %s: %w", req.StartsAt, err)
	}

	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid ends_at %s: %w", req.EndsAt, err)
	}

	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("ends_at must be after starts_at")
	}

	now := time.Now()
	schedule := &entity.Schedule{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TourID:          tourID,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		MaxParticipants: req.MaxParticipants,
		GuidesRequired:  req.GuidesRequired,
		Price:           req.Price,
		Currency:        req.Currency,
		Status:          entity.ScheduleStatusScheduled,
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("tour_id", req.TourID),
		)
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.log.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("tour_id", req.TourID),
		zap.Time("starts_at", startsAt),
		zap.Int("max_participants", req.MaxParticipants),
		zap.Int("guides_required", req.GuidesRequired),
	)

	resp := response.ScheduleToResponse(schedule)
	resp.TourName = tour.Name
	return &resp, nil
}

// GetScheduleByID returns the schedule with its counters recomputed
// from the ledger rows.
func (s *scheduleService) GetScheduleByID(ctx context.Context, scheduleID string) (*response.ScheduleDetailResponse, error) {
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

	booked, err := s.repo.Booking.SumActiveParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sum booked participants: %w", err)
	}

	assigned, err := s.repo.Assignment.CountActive(ctx, id, s.policy.CountPending)
	if err != nil {
		return nil, fmt.Errorf("count assignments: %w", err)
	}

	available := schedule.MaxParticipants - booked
	if available < 0 {
		available = 0
	}

	resp := &response.ScheduleDetailResponse{
		ScheduleResponse: response.ScheduleToResponse(schedule),
		BookedCount:      booked,
		AvailableSpots:   available,
		GuidesAssigned:   assigned,
		FullyStaffed:     assigned >= schedule.GuidesRequired,
	}

	tour, _ := s.repo.Tour.FindByID(ctx, schedule.TourID)
	if tour != nil {
		resp.TourName = tour.Name
	}

	return resp, nil
}

func (s *scheduleService) GetTourSchedules(ctx context.Context, tourID string) ([]response.ScheduleResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, fmt.Errorf("invalid tour ID format %s: %w", tourID, err)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check tour: %w", err)
	}
	if tour == nil {
		return nil, fmt.Errorf("tour %s: %w", tourID, ErrNotFound)
	}

	schedules, err := s.repo.Schedule.FindByTourID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tour schedules: %w", err)
	}

	responses := make([]response.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		responses[i] = response.ScheduleToResponse(schedule)
		responses[i].TourName = tour.Name
	}

	return responses, nil
}

// UpdateScheduleStatus drives the lifecycle. Cancellation is terminal
// and freezes capacity and staffing writes; existing bookings and
// assignments are kept.
func (s *scheduleService) UpdateScheduleStatus(ctx context.Context, scheduleID string, req *request.UpdateScheduleStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	release, err := acquireScheduleLock(ctx, s.locks, scheduleID, s.lockWait)
	if err != nil {
		return err
	}
	defer release()

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find schedule: %w", err)
	}
	if schedule == nil {
		return fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
	}

	target := entity.ScheduleStatus(req.Status)
	if !schedule.CanTransitionTo(target) {
		return fmt.Errorf("schedule %s is %s, cannot become %s: %w",
			scheduleID, schedule.Status, target, ErrInvalidTransition)
	}

	if err := s.repo.Schedule.UpdateStatus(ctx, id, target); err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}

	s.log.Info("Schedule status updated",
		zap.String("schedule_id", scheduleID),
		zap.String("from", string(schedule.Status)),
		zap.String("to", string(target)),
	)

	return nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	release, err := acquireScheduleLock(ctx, s.locks, scheduleID, s.lockWait)
	if err != nil {
		return err
	}
	defer release()

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete schedule",
			zap.Error(err),
			zap.String("schedule_id", scheduleID),
		)
		return fmt.Errorf("delete schedule %s: %w", scheduleID, err)
	}

	return nil
}
