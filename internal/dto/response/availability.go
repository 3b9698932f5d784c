package response

import (
	"time"
)

// AvailabilityItem is one bookable schedule surviving the party-size
// filter, with the spots left at query time. A later booking may still
// lose the race; callers treat a capacity failure as a normal outcome.
type AvailabilityItem struct {
	ScheduleID     string    `json:"schedule_id"`
	TourID         string    `json:"tour_id"`
	TourName       string    `json:"tour_name,omitempty"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	AvailableSpots int       `json:"available_spots"`
}

// AvailabilityDay groups qualifying schedules by calendar date,
// ordered by starts_at within the day.
type AvailabilityDay struct {
	Date      string             `json:"date"`
	Schedules []AvailabilityItem `json:"schedules"`
}
