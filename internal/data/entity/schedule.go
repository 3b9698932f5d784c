package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

const (
	ScheduleStatusScheduled  ScheduleStatus = "scheduled"
	ScheduleStatusInProgress ScheduleStatus = "in_progress"
	ScheduleStatusCompleted  ScheduleStatus = "completed"
	ScheduleStatusCancelled  ScheduleStatus = "cancelled"
)

// Schedule is one bookable run of a tour. Booked participants and
// assigned guides are never stored on the row; they are recomputed
// from bookings and guide_assignments so the counters cannot drift.
type Schedule struct {
	Base
	TourID          uuid.UUID      `db:"tour_id"`
	StartsAt        time.Time      `db:"starts_at"`
	EndsAt          time.Time      `db:"ends_at"`
	MaxParticipants int            `db:"max_participants"`
	GuidesRequired  int            `db:"guides_required"`
	Price           float64        `db:"price"`
	Currency        string         `db:"currency"`
	Status          ScheduleStatus `db:"status"`
}

// IsBookable reports whether capacity-affecting writes are accepted.
func (s *Schedule) IsBookable() bool {
	return s.Status == ScheduleStatusScheduled
}

// CanTransitionTo validates the schedule lifecycle: scheduled ->
// in_progress -> completed, or scheduled -> cancelled (terminal).
func (s *Schedule) CanTransitionTo(target ScheduleStatus) bool {
	switch s.Status {
	case ScheduleStatusScheduled:
		return target == ScheduleStatusInProgress || target == ScheduleStatusCancelled
	case ScheduleStatusInProgress:
		return target == ScheduleStatusCompleted
	default:
		return false
	}
}
