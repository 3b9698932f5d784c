package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Alert thresholds. Utilization is booked/capacity in percent.
const (
	almostFullThreshold  = 90
	lowCapacityThreshold = 30

	// Low-capacity alerts only surface when at least this many
	// schedules in the window qualify, so naturally small tours do
	// not produce noise.
	lowCapacityMinCount = 3
)

// ReportService derives the operational read models: the utilization
// heatmap and the alert list. Both are pure folds over ledger state,
// recomputed on every call and never cached here.
type ReportService interface {
	BuildHeatmap(ctx context.Context, dateFrom, dateTo time.Time, tourIDs []uuid.UUID) (*response.HeatmapResponse, error)
	GetAlerts(ctx context.Context, dateFrom, dateTo time.Time) ([]response.Alert, error)
}

type reportService struct {
	repo   *repository.Repository
	policy utils.StaffingConfig
	log    *zap.Logger
}

func NewReportService(repo *repository.Repository, policy utils.StaffingConfig, log *zap.Logger) ReportService {
	return &reportService{
		repo:   repo,
		policy: policy,
		log:    log.With(zap.String("service", "report")),
	}
}

// BuildHeatmap aggregates schedules into (tour, date) cells across
// whole days [dateFrom, dateTo]. Empty tourIDs means all active tours.
// Cells without runs are emitted with HasRuns=false, which renders
// differently from a fully empty but bookable cell.
func (s *reportService) BuildHeatmap(ctx context.Context, dateFrom, dateTo time.Time, tourIDs []uuid.UUID) (*response.HeatmapResponse, error) {
	if len(tourIDs) == 0 {
		tours, err := s.repo.Tour.FindAll(ctx, 500, 0, true)
		if err != nil {
			return nil, fmt.Errorf("find active tours: %w", err)
		}
		for _, tour := range tours {
			tourIDs = append(tourIDs, tour.ID)
		}
	}

	rangeEnd := dateTo.AddDate(0, 0, 1)
	schedules, err := s.repo.Schedule.FindInRange(ctx, dateFrom, rangeEnd, tourIDs, []entity.ScheduleStatus{
		entity.ScheduleStatusScheduled,
		entity.ScheduleStatusInProgress,
		entity.ScheduleStatusCompleted,
	})
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

	type cellKey struct {
		tourID uuid.UUID
		date   string
	}

	cells := make(map[cellKey]*response.HeatmapCell)
	for _, schedule := range schedules {
		key := cellKey{tourID: schedule.TourID, date: schedule.StartsAt.Format("2006-01-02")}
		cell, ok := cells[key]
		if !ok {
			cell = &response.HeatmapCell{
				TourID:  key.tourID.String(),
				Date:    key.date,
				HasRuns: true,
			}
			cells[key] = cell
		}
		cell.TourRunCount++
		cell.BookedCount += booked[schedule.ID]
		cell.TotalCapacity += schedule.MaxParticipants
	}

	// Walk the full grid so every requested (tour, date) pair gets a
	// cell, runs or not.
	resp := &response.HeatmapResponse{
		DateFrom: dateFrom.Format("2006-01-02"),
		DateTo:   dateTo.Format("2006-01-02"),
	}

	for day := dateFrom; day.Before(rangeEnd); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := day.Format("2006-01-02")
		for _, tourID := range tourIDs {
			cell, ok := cells[cellKey{tourID: tourID, date: date}]
			if !ok {
				resp.Cells = append(resp.Cells, response.HeatmapCell{
					TourID:  tourID.String(),
					Date:    date,
					HasRuns: false,
				})
				continue
			}

			if cell.TotalCapacity > 0 {
				utilization := utilizationPercent(cell.BookedCount, cell.TotalCapacity)
				cell.Utilization = &utilization
			}
			resp.Cells = append(resp.Cells, *cell)
		}
	}

	return resp, nil
}

// GetAlerts scans non-cancelled schedules in the window and classifies
// each into zero or more categories. A schedule can trip several
// alerts at once; nothing is mutated or cached.
func (s *reportService) GetAlerts(ctx context.Context, dateFrom, dateTo time.Time) ([]response.Alert, error) {
	rangeEnd := dateTo.AddDate(0, 0, 1)
	schedules, err := s.repo.Schedule.FindInRange(ctx, dateFrom, rangeEnd, nil, []entity.ScheduleStatus{
		entity.ScheduleStatusScheduled,
		entity.ScheduleStatusInProgress,
		entity.ScheduleStatusCompleted,
	})
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

	assigned, err := s.repo.Assignment.CountActiveFor(ctx, scheduleIDs, s.policy.CountPending)
	if err != nil {
		return nil, fmt.Errorf("count assignments: %w", err)
	}

	pending, err := s.repo.Assignment.CountPendingFor(ctx, scheduleIDs)
	if err != nil {
		return nil, fmt.Errorf("count pending assignments: %w", err)
	}

	tourNames := s.tourNames(ctx, schedules)

	var alerts []response.Alert
	var lowCapacity []response.Alert

	for _, schedule := range schedules {
		base := response.Alert{
			ScheduleID:      schedule.ID.String(),
			TourID:          schedule.TourID.String(),
			TourName:        tourNames[schedule.TourID],
			StartsAt:        schedule.StartsAt,
			BookedCount:     booked[schedule.ID],
			MaxParticipants: schedule.MaxParticipants,
			GuidesRequired:  schedule.GuidesRequired,
			GuidesAssigned:  assigned[schedule.ID],
		}

		if schedule.GuidesRequired > 0 && base.GuidesAssigned == 0 {
			alert := base
			alert.Category = response.AlertNoGuide
			alert.Severity = response.SeverityCritical
			alert.Message = fmt.Sprintf("No guide assigned, %d required", schedule.GuidesRequired)
			alerts = append(alerts, alert)
		}

		if pending[schedule.ID] > 0 {
			alert := base
			alert.Category = response.AlertPendingConfirmation
			alert.Severity = response.SeverityWarning
			alert.Message = fmt.Sprintf("%d guide assignment(s) awaiting confirmation", pending[schedule.ID])
			alerts = append(alerts, alert)
		}

		if schedule.MaxParticipants > 0 {
			utilization := utilizationPercent(base.BookedCount, schedule.MaxParticipants)

			switch {
			case base.BookedCount >= schedule.MaxParticipants:
				alert := base
				alert.Category = response.AlertSoldOut
				alert.Severity = response.SeverityInfo
				alert.Message = "Sold out"
				alerts = append(alerts, alert)
			case utilization >= almostFullThreshold:
				alert := base
				alert.Category = response.AlertAlmostFull
				alert.Severity = response.SeverityWarning
				alert.Message = fmt.Sprintf("%d%% booked, %d spot(s) left",
					utilization, schedule.MaxParticipants-base.BookedCount)
				alerts = append(alerts, alert)
			case utilization < lowCapacityThreshold && base.BookedCount > 0:
				alert := base
				alert.Category = response.AlertLowCapacity
				alert.Severity = response.SeverityInfo
				alert.Message = fmt.Sprintf("Only %d%% booked", utilization)
				lowCapacity = append(lowCapacity, alert)
			}
		}
	}

	if len(lowCapacity) >= lowCapacityMinCount {
		alerts = append(alerts, lowCapacity...)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := severityRank(alerts[i].Severity), severityRank(alerts[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return alerts[i].StartsAt.Before(alerts[j].StartsAt)
	})

	s.log.Debug("Alerts derived",
		zap.Time("date_from", dateFrom),
		zap.Time("date_to", dateTo),
		zap.Int("scanned", len(schedules)),
		zap.Int("alerts", len(alerts)),
	)

	return alerts, nil
}

func (s *reportService) tourNames(ctx context.Context, schedules []*entity.Schedule) map[uuid.UUID]string {
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

func utilizationPercent(booked, capacity int) int {
	return int(math.Round(float64(booked) / float64(capacity) * 100))
}

func severityRank(severity response.AlertSeverity) int {
	switch severity {
	case response.SeverityCritical:
		return 0
	case response.SeverityWarning:
		return 1
	default:
		return 2
	}
}
