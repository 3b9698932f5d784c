package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	Reference     string               `json:"reference"`
	ScheduleID    string               `json:"schedule_id"`
	CustomerID    string               `json:"customer_id"`
	TourName      string               `json:"tour_name,omitempty"`
	StartsAt      *time.Time           `json:"starts_at,omitempty"`
	Participants  int                  `json:"participants"`
	Status        entity.BookingStatus `json:"status"`
	PaymentStatus string               `json:"payment_status,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		Reference:     booking.Reference,
		ScheduleID:    booking.ScheduleID.String(),
		CustomerID:    booking.CustomerID.String(),
		Participants:  booking.Participants,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt,
	}
}
