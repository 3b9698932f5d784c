package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/events"
	"tour-booking/pkg/locks"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StaffingService is the staffing ledger: it owns the assignment state
// machine and the at-most-one-primary invariant. Writes against one
// schedule run inside the same lock the capacity ledger uses.
type StaffingService interface {
	AssignGuide(ctx context.Context, scheduleID string, req *request.AssignGuideRequest) (*response.AssignmentResponse, error)
	AssignExternalGuide(ctx context.Context, scheduleID string, req *request.AssignExternalGuideRequest) (*response.AssignmentResponse, error)
	ConfirmAssignment(ctx context.Context, assignmentID string) error
	DeclineAssignment(ctx context.Context, assignmentID string) error
	RemoveAssignment(ctx context.Context, assignmentID string) error
	SetPrimaryGuide(ctx context.Context, scheduleID string, req *request.SetPrimaryGuideRequest) error

	GetScheduleAssignments(ctx context.Context, scheduleID string) ([]response.AssignmentResponse, error)
	GetStaffing(ctx context.Context, scheduleID string) (*response.StaffingResponse, error)
}

type staffingService struct {
	repo      *repository.Repository
	locks     *locks.Manager
	lockWait  time.Duration
	policy    utils.StaffingConfig
	publisher events.Publisher
	log       *zap.Logger
}

func NewStaffingService(repo *repository.Repository, lockMgr *locks.Manager, lockWait time.Duration, policy utils.StaffingConfig, publisher events.Publisher, log *zap.Logger) StaffingService {
	return &staffingService{
		repo:      repo,
		locks:     lockMgr,
		lockWait:  lockWait,
		policy:    policy,
		publisher: publisher,
		log:       log.With(zap.String("service", "staffing")),
	}
}

func (s *staffingService) AssignGuide(ctx context.Context, scheduleID string, req *request.AssignGuideRequest) (*response.AssignmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Assign guide validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	schedUUID, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	guideUUID, err := uuid.Parse(req.GuideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", req.GuideID, err)
	}

	guide, err := s.repo.Guide.FindByID(ctx, guideUUID)
	if err != nil {
		return nil, fmt.Errorf("check guide: %w", err)
	}
	if guide == nil {
		return nil, fmt.Errorf("guide %s: %w", req.GuideID, ErrNotFound)
	}

	release, err := acquireScheduleLock(ctx, s.locks, scheduleID, s.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	assignment, err := s.createAssignment(ctx, schedUUID, &guideUUID, nil, nil, req.IsPrimary, req.AutoConfirm)
	if err != nil {
		return nil, err
	}

	// Team assignments hand an event to the notification dispatcher.
	// Delivery failure must not undo the assignment.
	event := events.GuideAssignedEvent{
		ScheduleID: scheduleID,
		GuideID:    req.GuideID,
		Status:     string(assignment.Status),
	}
	if err := s.publisher.PublishGuideAssigned(ctx, event); err != nil {
		s.log.Warn("Failed to publish guide assigned event",
			zap.Error(err),
			zap.String("schedule_id", scheduleID),
			zap.String("guide_id", req.GuideID),
		)
	}

	s.log.Info("Guide assigned",
		zap.String("assignment_id", assignment.ID.String()),
		zap.String("schedule_id", scheduleID),
		zap.String("guide_id", req.GuideID),
		zap.Bool("is_primary", assignment.IsPrimary),
		zap.String("status", string(assignment.Status)),
	)

	resp := response.AssignmentToResponse(assignment)
	resp.GuideName = guide.Name
	return &resp, nil
}

// AssignExternalGuide runs the same state machine with an outsourced
// name/contact instead of a roster guide. No event is emitted: the
// notification system only handles team guides.
func (s *staffingService) AssignExternalGuide(ctx context.Context, scheduleID string, req *request.AssignExternalGuideRequest) (*response.AssignmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Assign external guide validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	schedUUID, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	release, err := acquireScheduleLock(ctx, s.locks, scheduleID, s.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	name := req.Name
	contact := req.Contact
	assignment, err := s.createAssignment(ctx, schedUUID, nil, &name, &contact, false, req.AutoConfirm)
	if err != nil {
		return nil, err
	}

	s.log.Info("External guide assigned",
		zap.String("assignment_id", assignment.ID.String()),
		zap.String("schedule_id", scheduleID),
		zap.String("name", req.Name),
		zap.String("status", string(assignment.Status)),
	)

	resp := response.AssignmentToResponse(assignment)
	return &resp, nil
}

// createAssignment holds the shared admission path. Caller must hold
// the schedule lock.
func (s *staffingService) createAssignment(ctx context.Context, scheduleID uuid.UUID, guideID *uuid.UUID, name, contact *string, isPrimary, autoConfirm bool) (*entity.GuideAssignment, error) {
	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	if schedule == nil || schedule.Status == entity.ScheduleStatusCancelled {
		return nil, fmt.Errorf("schedule %s: %w", scheduleID.String(), ErrScheduleNotBookable)
	}

	if guideID != nil {
		existing, err := s.repo.Assignment.FindActiveByGuide(ctx, scheduleID, *guideID)
		if err != nil {
			return nil, fmt.Errorf("check existing assignment: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("guide %s on schedule %s: %w",
				guideID.String(), scheduleID.String(), ErrAlreadyAssigned)
		}
	}

	// Promoting a new primary demotes any prior one in the same
	// locked operation, keeping at most one primary per schedule.
	if isPrimary {
		if err := s.repo.Assignment.DemotePrimary(ctx, scheduleID); err != nil {
			return nil, fmt.Errorf("demote prior primary: %w", err)
		}
	}

	status := entity.AssignmentStatusPending
	if autoConfirm {
		status = entity.AssignmentStatusConfirmed
	}

	now := time.Now()
	assignment := &entity.GuideAssignment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ScheduleID:        scheduleID,
		GuideID:           guideID,
		OutsourcedName:    name,
		OutsourcedContact: contact,
		IsPrimary:         isPrimary,
		Status:            status,
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	return assignment, nil
}

func (s *staffingService) ConfirmAssignment(ctx context.Context, assignmentID string) error {
	return s.transitionAssignment(ctx, assignmentID, entity.AssignmentStatusConfirmed)
}

func (s *staffingService) DeclineAssignment(ctx context.Context, assignmentID string) error {
	return s.transitionAssignment(ctx, assignmentID, entity.AssignmentStatusDeclined)
}

// transitionAssignment moves a pending assignment to confirmed or
// declined. Declined rows are kept for audit; a declined primary loses
// its primary flag so a replacement can take it.
func (s *staffingService) transitionAssignment(ctx context.Context, assignmentID string, target entity.AssignmentStatus) error {
	id, err := uuid.Parse(assignmentID)
	if err != nil {
		return fmt.Errorf("invalid assignment ID format %s: %w", assignmentID, err)
	}

	assignment, err := s.repo.Assignment.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}

	release, err := acquireScheduleLock(ctx, s.locks, assignment.ScheduleID.String(), s.lockWait)
	if err != nil {
		return err
	}
	defer release()

	// Re-read under the lock.
	assignment, err = s.repo.Assignment.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}

	if assignment.Status != entity.AssignmentStatusPending {
		return fmt.Errorf("assignment %s is %s: %w", assignmentID, assignment.Status, ErrInvalidTransition)
	}

	if err := s.repo.Assignment.UpdateStatus(ctx, id, target); err != nil {
		return fmt.Errorf("update assignment status: %w", err)
	}

	if target == entity.AssignmentStatusDeclined && assignment.IsPrimary {
		if err := s.repo.Assignment.SetPrimary(ctx, id, false); err != nil {
			return fmt.Errorf("clear primary on declined assignment: %w", err)
		}
	}

	s.log.Info("Assignment transitioned",
		zap.String("assignment_id", assignmentID),
		zap.String("status", string(target)),
	)

	return nil
}

// RemoveAssignment hard-deletes the row. Used for corrections; legal
// from any status.
func (s *staffingService) RemoveAssignment(ctx context.Context, assignmentID string) error {
	id, err := uuid.Parse(assignmentID)
	if err != nil {
		return fmt.Errorf("invalid assignment ID format %s: %w", assignmentID, err)
	}

	assignment, err := s.repo.Assignment.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}

	release, err := acquireScheduleLock(ctx, s.locks, assignment.ScheduleID.String(), s.lockWait)
	if err != nil {
		return err
	}
	defer release()

	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete assignment %s: %w", assignmentID, err)
	}

	s.log.Info("Assignment removed",
		zap.String("assignment_id", assignmentID),
		zap.String("schedule_id", assignment.ScheduleID.String()),
	)

	return nil
}

func (s *staffingService) SetPrimaryGuide(ctx context.Context, scheduleID string, req *request.SetPrimaryGuideRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	schedUUID, err := uuid.Parse(scheduleID)
	if err != nil {
		return fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	guideUUID, err := uuid.Parse(req.GuideID)
	if err != nil {
		return fmt.Errorf("invalid guide ID format %s: %w", req.GuideID, err)
	}

	release, err := acquireScheduleLock(ctx, s.locks, scheduleID, s.lockWait)
	if err != nil {
		return err
	}
	defer release()

	assignment, err := s.repo.Assignment.FindActiveByGuide(ctx, schedUUID, guideUUID)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("guide %s on schedule %s: %w", req.GuideID, scheduleID, ErrNotAssigned)
	}

	if err := s.repo.Assignment.DemotePrimary(ctx, schedUUID); err != nil {
		return fmt.Errorf("demote prior primary: %w", err)
	}

	if err := s.repo.Assignment.SetPrimary(ctx, assignment.ID, true); err != nil {
		return fmt.Errorf("promote assignment %s: %w", assignment.ID.String(), err)
	}

	s.log.Info("Primary guide set",
		zap.String("schedule_id", scheduleID),
		zap.String("guide_id", req.GuideID),
	)

	return nil
}

func (s *staffingService) GetScheduleAssignments(ctx context.Context, scheduleID string) ([]response.AssignmentResponse, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule ID format %s: %w", scheduleID, err)
	}

	assignments, err := s.repo.Assignment.FindByScheduleID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find schedule assignments: %w", err)
	}

	responses := make([]response.AssignmentResponse, len(assignments))
	for i, assignment := range assignments {
		responses[i] = response.AssignmentToResponse(assignment)
		if assignment.GuideID != nil {
			guide, _ := s.repo.Guide.FindByID(ctx, *assignment.GuideID)
			if guide != nil {
				responses[i].GuideName = guide.Name
			}
		}
	}

	return responses, nil
}

// GetStaffing derives the sufficiency projection: assigned count per
// policy (pending counted or not) against guides required.
func (s *staffingService) GetStaffing(ctx context.Context, scheduleID string) (*response.StaffingResponse, error) {
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

	assigned, err := s.repo.Assignment.CountActive(ctx, id, s.policy.CountPending)
	if err != nil {
		return nil, fmt.Errorf("count assignments: %w", err)
	}

	return &response.StaffingResponse{
		ScheduleID:     scheduleID,
		GuidesRequired: schedule.GuidesRequired,
		GuidesAssigned: assigned,
		FullyStaffed:   assigned >= schedule.GuidesRequired,
	}, nil
}
