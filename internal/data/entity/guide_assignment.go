package entity

import (
	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusConfirmed AssignmentStatus = "confirmed"
	AssignmentStatusDeclined  AssignmentStatus = "declined"
)

// GuideAssignment is a guide's claim on a schedule's staffing
// requirement. Team assignments carry GuideID; outsourced assignments
// carry the name/contact pair instead, never both.
type GuideAssignment struct {
	Base
	ScheduleID        uuid.UUID        `db:"schedule_id"`
	GuideID           *uuid.UUID       `db:"guide_id"`
	OutsourcedName    *string          `db:"outsourced_name"`
	OutsourcedContact *string          `db:"outsourced_contact"`
	IsPrimary         bool             `db:"is_primary"`
	Status            AssignmentStatus `db:"status"`
}

// IsExternal reports whether this is an outsourced guide.
func (a *GuideAssignment) IsExternal() bool {
	return a.GuideID == nil
}

// IsActive reports whether the assignment still claims the staffing
// slot. Declined rows are kept for audit but count for nothing.
func (a *GuideAssignment) IsActive() bool {
	return a.Status != AssignmentStatusDeclined
}
