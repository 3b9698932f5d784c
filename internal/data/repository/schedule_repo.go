package repository

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	FindByTourID(ctx context.Context, tourID uuid.UUID) ([]*entity.Schedule, error)

	// FindInRange returns schedules with starts_at inside [from, to),
	// ordered by starts_at. Optional filters: tourIDs (nil = all tours)
	// and statuses (nil = all statuses).
	FindInRange(ctx context.Context, from, to time.Time, tourIDs []uuid.UUID, statuses []entity.ScheduleStatus) ([]*entity.Schedule, error)

	Update(ctx context.Context, schedule *entity.Schedule) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ScheduleStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

const scheduleColumns = `id, tour_id, starts_at, ends_at, max_participants, guides_required, price, currency, status, created_at, updated_at`

func scanSchedule(row pgx.Row) (*entity.Schedule, error) {
	var schedule entity.Schedule
	err := row.Scan(
		&schedule.ID,
		&schedule.TourID,
		&schedule.StartsAt,
		&schedule.EndsAt,
		&schedule.MaxParticipants,
		&schedule.GuidesRequired,
		&schedule.Price,
		&schedule.Currency,
		&schedule.Status,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, tour_id, starts_at, ends_at, max_participants, guides_required, price, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.TourID,
		schedule.StartsAt,
		schedule.EndsAt,
		schedule.MaxParticipants,
		schedule.GuidesRequired,
		schedule.Price,
		schedule.Currency,
		schedule.Status,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("tour_id", schedule.TourID.String()),
			zap.Time("starts_at", schedule.StartsAt),
		)
		return fmt.Errorf("create schedule for tour %s: %w", schedule.TourID.String(), err)
	}

	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := scanSchedule(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule by ID",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return nil, fmt.Errorf("find schedule by ID %s: %w", id.String(), err)
	}

	return schedule, nil
}

func (r *scheduleRepository) FindByTourID(ctx context.Context, tourID uuid.UUID) ([]*entity.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE tour_id = $1 ORDER BY starts_at`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		r.log.Error("Failed to find schedules by tour ID",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return nil, fmt.Errorf("find schedules by tour ID %s: %w", tourID.String(), err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

func (r *scheduleRepository) FindInRange(ctx context.Context, from, to time.Time, tourIDs []uuid.UUID, statuses []entity.ScheduleStatus) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE starts_at >= $1 AND starts_at < $2
		  AND ($3::uuid[] IS NULL OR tour_id = ANY($3))
		  AND ($4::text[] IS NULL OR status = ANY($4))
		ORDER BY starts_at
	`

	var tourFilter []uuid.UUID
	if len(tourIDs) > 0 {
		tourFilter = tourIDs
	}

	var statusFilter []string
	for _, s := range statuses {
		statusFilter = append(statusFilter, string(s))
	}

	rows, err := r.db.Query(ctx, query, from, to, tourFilter, statusFilter)
	if err != nil {
		r.log.Error("Failed to find schedules in range",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find schedules in range: %w", err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

func collectSchedules(rows pgx.Rows) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		UPDATE schedules
		SET tour_id = $2, starts_at = $3, ends_at = $4, max_participants = $5,
		    guides_required = $6, price = $7, currency = $8, status = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.TourID,
		schedule.StartsAt,
		schedule.EndsAt,
		schedule.MaxParticipants,
		schedule.GuidesRequired,
		schedule.Price,
		schedule.Currency,
		schedule.Status,
		schedule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update schedule",
			zap.Error(err),
			zap.String("schedule_id", schedule.ID.String()),
		)
		return fmt.Errorf("update schedule %s: %w", schedule.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule %s not found", schedule.ID.String())
	}

	return nil
}

func (r *scheduleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ScheduleStatus) error {
	query := `UPDATE schedules SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update schedule status",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update schedule %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule %s not found", id.String())
	}

	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM schedules WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete schedule",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return fmt.Errorf("delete schedule %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule %s not found", id.String())
	}

	r.log.Info("Schedule deleted", zap.String("schedule_id", id.String()))
	return nil
}
