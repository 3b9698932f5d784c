package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type ScheduleResponse struct {
	ID              string                `json:"id"`
	TourID          string                `json:"tour_id"`
	TourName        string                `json:"tour_name,omitempty"`
	StartsAt        time.Time             `json:"starts_at"`
	EndsAt          time.Time             `json:"ends_at"`
	MaxParticipants int                   `json:"max_participants"`
	GuidesRequired  int                   `json:"guides_required"`
	Price           float64               `json:"price"`
	Currency        string                `json:"currency"`
	Status          entity.ScheduleStatus `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
}

// ScheduleDetailResponse adds the counters recomputed from the ledger
// rows at read time.
type ScheduleDetailResponse struct {
	ScheduleResponse
	BookedCount    int  `json:"booked_count"`
	AvailableSpots int  `json:"available_spots"`
	GuidesAssigned int  `json:"guides_assigned"`
	FullyStaffed   bool `json:"fully_staffed"`
}

// StaffingResponse is the staffing-sufficiency projection for one
// schedule.
type StaffingResponse struct {
	ScheduleID     string `json:"schedule_id"`
	GuidesRequired int    `json:"guides_required"`
	GuidesAssigned int    `json:"guides_assigned"`
	FullyStaffed   bool   `json:"fully_staffed"`
}

func ScheduleToResponse(schedule *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:              schedule.ID.String(),
		TourID:          schedule.TourID.String(),
		StartsAt:        schedule.StartsAt,
		EndsAt:          schedule.EndsAt,
		MaxParticipants: schedule.MaxParticipants,
		GuidesRequired:  schedule.GuidesRequired,
		Price:           schedule.Price,
		Currency:        schedule.Currency,
		Status:          schedule.Status,
		CreatedAt:       schedule.CreatedAt,
	}
}
