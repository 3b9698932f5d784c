package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.GuideAssignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.GuideAssignment, error)
	FindByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]*entity.GuideAssignment, error)

	// FindActiveByGuide returns the guide's non-declined assignment on
	// the schedule, or nil when the guide holds none.
	FindActiveByGuide(ctx context.Context, scheduleID, guideID uuid.UUID) (*entity.GuideAssignment, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AssignmentStatus) error
	SetPrimary(ctx context.Context, id uuid.UUID, isPrimary bool) error

	// DemotePrimary clears the primary flag on every assignment of the
	// schedule. Used before promoting a new primary.
	DemotePrimary(ctx context.Context, scheduleID uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error

	// Staffing counts. Declined assignments never count; pending ones
	// count only when includePending is set.
	CountActive(ctx context.Context, scheduleID uuid.UUID, includePending bool) (int, error)
	CountActiveFor(ctx context.Context, scheduleIDs []uuid.UUID, includePending bool) (map[uuid.UUID]int, error)
	CountPendingFor(ctx context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type assignmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAssignmentRepository(db database.PgxIface, log *zap.Logger) AssignmentRepository {
	return &assignmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "assignment")),
	}
}

const assignmentColumns = `id, schedule_id, guide_id, outsourced_name, outsourced_contact, is_primary, status, created_at, updated_at`

func scanAssignment(row pgx.Row) (*entity.GuideAssignment, error) {
	var assignment entity.GuideAssignment
	err := row.Scan(
		&assignment.ID,
		&assignment.ScheduleID,
		&assignment.GuideID,
		&assignment.OutsourcedName,
		&assignment.OutsourcedContact,
		&assignment.IsPrimary,
		&assignment.Status,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.GuideAssignment) error {
	query := `
		INSERT INTO guide_assignments (id, schedule_id, guide_id, outsourced_name, outsourced_contact, is_primary, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		assignment.ID,
		assignment.ScheduleID,
		assignment.GuideID,
		assignment.OutsourcedName,
		assignment.OutsourcedContact,
		assignment.IsPrimary,
		assignment.Status,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create guide assignment",
			zap.Error(err),
			zap.String("schedule_id", assignment.ScheduleID.String()),
		)
		return fmt.Errorf("create guide assignment for schedule %s: %w", assignment.ScheduleID.String(), err)
	}

	return nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GuideAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM guide_assignments WHERE id = $1`

	assignment, err := scanAssignment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find assignment by ID",
			zap.Error(err),
			zap.String("assignment_id", id.String()),
		)
		return nil, fmt.Errorf("find assignment by ID %s: %w", id.String(), err)
	}

	return assignment, nil
}

func (r *assignmentRepository) FindByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]*entity.GuideAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM guide_assignments WHERE schedule_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, scheduleID)
	if err != nil {
		r.log.Error("Failed to find assignments by schedule ID",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return nil, fmt.Errorf("find assignments by schedule ID %s: %w", scheduleID.String(), err)
	}
	defer rows.Close()

	var assignments []*entity.GuideAssignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment row: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

func (r *assignmentRepository) FindActiveByGuide(ctx context.Context, scheduleID, guideID uuid.UUID) (*entity.GuideAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM guide_assignments
		WHERE schedule_id = $1 AND guide_id = $2 AND status <> 'declined'
	`

	assignment, err := scanAssignment(r.db.QueryRow(ctx, query, scheduleID, guideID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active assignment by guide",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
			zap.String("guide_id", guideID.String()),
		)
		return nil, fmt.Errorf("find active assignment for guide %s on schedule %s: %w",
			guideID.String(), scheduleID.String(), err)
	}

	return assignment, nil
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AssignmentStatus) error {
	query := `UPDATE guide_assignments SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update assignment status",
			zap.Error(err),
			zap.String("assignment_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update assignment %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", id.String())
	}

	return nil
}

func (r *assignmentRepository) SetPrimary(ctx context.Context, id uuid.UUID, isPrimary bool) error {
	query := `UPDATE guide_assignments SET is_primary = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, isPrimary)
	if err != nil {
		r.log.Error("Failed to set primary flag",
			zap.Error(err),
			zap.String("assignment_id", id.String()),
			zap.Bool("is_primary", isPrimary),
		)
		return fmt.Errorf("set primary flag on assignment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", id.String())
	}

	return nil
}

func (r *assignmentRepository) DemotePrimary(ctx context.Context, scheduleID uuid.UUID) error {
	query := `UPDATE guide_assignments SET is_primary = false, updated_at = NOW() WHERE schedule_id = $1 AND is_primary = true`

	_, err := r.db.Exec(ctx, query, scheduleID)
	if err != nil {
		r.log.Error("Failed to demote primary assignment",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return fmt.Errorf("demote primary assignment on schedule %s: %w", scheduleID.String(), err)
	}

	return nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM guide_assignments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete assignment",
			zap.Error(err),
			zap.String("assignment_id", id.String()),
		)
		return fmt.Errorf("delete assignment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", id.String())
	}

	r.log.Info("Assignment deleted", zap.String("assignment_id", id.String()))
	return nil
}

func (r *assignmentRepository) CountActive(ctx context.Context, scheduleID uuid.UUID, includePending bool) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM guide_assignments
		WHERE schedule_id = $1
		  AND (status = 'confirmed' OR ($2 AND status = 'pending'))
	`

	var count int
	err := r.db.QueryRow(ctx, query, scheduleID, includePending).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active assignments",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return 0, fmt.Errorf("count active assignments for schedule %s: %w", scheduleID.String(), err)
	}

	return count, nil
}

func (r *assignmentRepository) CountActiveFor(ctx context.Context, scheduleIDs []uuid.UUID, includePending bool) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(scheduleIDs))
	if len(scheduleIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT schedule_id, COUNT(*)
		FROM guide_assignments
		WHERE schedule_id = ANY($1)
		  AND (status = 'confirmed' OR ($2 AND status = 'pending'))
		GROUP BY schedule_id
	`

	rows, err := r.db.Query(ctx, query, scheduleIDs, includePending)
	if err != nil {
		r.log.Error("Failed to count active assignments for schedules",
			zap.Error(err),
			zap.Int("schedule_count", len(scheduleIDs)),
		)
		return nil, fmt.Errorf("count active assignments for %d schedules: %w", len(scheduleIDs), err)
	}
	defer rows.Close()

	if err := collectCounts(rows, counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *assignmentRepository) CountPendingFor(ctx context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(scheduleIDs))
	if len(scheduleIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT schedule_id, COUNT(*)
		FROM guide_assignments
		WHERE schedule_id = ANY($1) AND status = 'pending'
		GROUP BY schedule_id
	`

	rows, err := r.db.Query(ctx, query, scheduleIDs)
	if err != nil {
		r.log.Error("Failed to count pending assignments for schedules",
			zap.Error(err),
			zap.Int("schedule_count", len(scheduleIDs)),
		)
		return nil, fmt.Errorf("count pending assignments for %d schedules: %w", len(scheduleIDs), err)
	}
	defer rows.Close()

	if err := collectCounts(rows, counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func collectCounts(rows pgx.Rows, counts map[uuid.UUID]int) error {
	for rows.Next() {
		var scheduleID uuid.UUID
		var count int
		if err := rows.Scan(&scheduleID, &count); err != nil {
			return fmt.Errorf("scan assignment count row: %w", err)
		}
		counts[scheduleID] = count
	}
	return nil
}
