package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Booking reserves Participants seats in one schedule. The participant
// count is immutable after creation; amendments are modeled as cancel
// plus recreate so the ledger stays append-only and auditable.
type Booking struct {
	Base
	Reference     string        `db:"reference"`
	ScheduleID    uuid.UUID     `db:"schedule_id"`
	CustomerID    uuid.UUID     `db:"customer_id"`
	Participants  int           `db:"participants"`
	Status        BookingStatus `db:"status"`
	PaymentStatus string        `db:"payment_status"` // owned by the payment system, read-only here
}

// CountsTowardCapacity reports whether the booking holds seats.
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status != BookingStatusCancelled
}
