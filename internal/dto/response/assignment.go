package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type AssignmentResponse struct {
	ID                string                  `json:"id"`
	ScheduleID        string                  `json:"schedule_id"`
	GuideID           *string                 `json:"guide_id,omitempty"`
	GuideName         string                  `json:"guide_name,omitempty"`
	OutsourcedName    *string                 `json:"outsourced_name,omitempty"`
	OutsourcedContact *string                 `json:"outsourced_contact,omitempty"`
	External          bool                    `json:"external"`
	IsPrimary         bool                    `json:"is_primary"`
	Status            entity.AssignmentStatus `json:"status"`
	CreatedAt         time.Time               `json:"created_at"`
}

func AssignmentToResponse(assignment *entity.GuideAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:                assignment.ID.String(),
		ScheduleID:        assignment.ScheduleID.String(),
		OutsourcedName:    assignment.OutsourcedName,
		OutsourcedContact: assignment.OutsourcedContact,
		External:          assignment.IsExternal(),
		IsPrimary:         assignment.IsPrimary,
		Status:            assignment.Status,
		CreatedAt:         assignment.CreatedAt,
	}

	if assignment.GuideID != nil {
		id := assignment.GuideID.String()
		resp.GuideID = &id
	}

	return resp
}
