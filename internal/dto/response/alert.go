package response

import (
	"time"
)

type AlertCategory string

const (
	AlertNoGuide             AlertCategory = "no_guide"
	AlertPendingConfirmation AlertCategory = "pending_confirmation"
	AlertAlmostFull          AlertCategory = "almost_full"
	AlertSoldOut             AlertCategory = "sold_out"
	AlertLowCapacity         AlertCategory = "low_capacity"
)

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// Alert flags one schedule in one category. A schedule can appear in
// several categories at once.
type Alert struct {
	Category       AlertCategory `json:"category"`
	Severity       AlertSeverity `json:"severity"`
	ScheduleID     string        `json:"schedule_id"`
	TourID         string        `json:"tour_id"`
	TourName       string        `json:"tour_name,omitempty"`
	StartsAt       time.Time     `json:"starts_at"`
	BookedCount    int           `json:"booked_count"`
	MaxParticipants int          `json:"max_participants"`
	GuidesRequired int           `json:"guides_required"`
	GuidesAssigned int           `json:"guides_assigned"`
	Message        string        `json:"message"`
}
