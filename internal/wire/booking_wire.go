package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Create booking (capacity checked)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking details
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/cancel - Cancel and release seats
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
