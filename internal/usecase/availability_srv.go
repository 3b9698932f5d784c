package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService is a read-only projection over the capacity
// ledger. It never reserves capacity: a schedule returned here can
// still fill up before the customer books, and callers must treat a
// capacity failure on the follow-up booking as a normal outcome.
type AvailabilityService interface {
	Search(ctx context.Context, dateFrom, dateTo time.Time, minParticipants int, tourID *uuid.UUID) ([]response.AvailabilityDay, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

// Search returns bookable schedules inside [dateFrom, dateTo] (whole
// days) with at least minParticipants spots left, ordered by starts_at
// and grouped by calendar date.
func (s *availabilityService) Search(ctx context.Context, dateFrom, dateTo time.Time, minParticipants int, tourID *uuid.UUID) ([]response.AvailabilityDay, error) {
	if minParticipants < 1 {
		minParticipants = 1
	}

	var tourIDs []uuid.UUID
	if tourID != nil {
		tourIDs = []uuid.UUID{*tourID}
	}

	rangeEnd := dateTo.AddDate(0, 0, 1)
	schedules, err := s.repo.Schedule.FindInRange(ctx, dateFrom, rangeEnd, tourIDs,
		[]entity.ScheduleStatus{entity.ScheduleStatusScheduled})
	if err != nil {
		return nil, fmt.Errorf("find schedules in range: %w", err)
	}

	scheduleIDs := make([]uuid.UUID, len(schedules))
	for i, schedule := range schedules {
		scheduleIDs[i] = schedule.ID
	}

	booked, err := s.repo.Booking.SumActiveParticipantsFor(ctx, scheduleIDs)
	if err != nil {
		return nil, fmt.Errorf("sum booked participants: %w", err)
	}

	tourNames := s.tourNames(ctx, schedules)

	// Schedules arrive ordered by starts_at, so appending in order
	// keeps both the day order and the order within each day.
	var days []response.AvailabilityDay
	for _, schedule := range schedules {
		available := schedule.MaxParticipants - booked[schedule.ID]
		if available < minParticipants {
			continue
		}

		item := response.AvailabilityItem{
			ScheduleID:     schedule.ID.String(),
			TourID:         schedule.TourID.String(),
			TourName:       tourNames[schedule.TourID],
			StartsAt:       schedule.StartsAt,
			EndsAt:         schedule.EndsAt,
			Price:          schedule.Price,
			Currency:       schedule.Currency,
			AvailableSpots: available,
		}

		date := schedule.StartsAt.Format("2006-01-02")
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, response.AvailabilityDay{Date: date})
		}
		days[len(days)-1].Schedules = append(days[len(days)-1].Schedules, item)
	}

	s.log.Debug("Availability search",
		zap.Time("date_from", dateFrom),
		zap.Time("date_to", dateTo),
		zap.Int("min_participants", minParticipants),
		zap.Int("scanned", len(schedules)),
		zap.Int("days", len(days)),
	)

	return days, nil
}

func (s *availabilityService) tourNames(ctx context.Context, schedules []*entity.Schedule) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for _, schedule := range schedules {
		if _, ok := names[schedule.TourID]; ok {
			continue
		}
		tour, _ := s.repo.Tour.FindByID(ctx, schedule.TourID)
		if tour != nil {
			names[schedule.TourID] = tour.Name
		}
	}
	return names
}
