package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoster(r chi.Router, rosterHandler *adaptor.RosterHandler, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Post("/", rosterHandler.CreateCustomer)
		r.Get("/", rosterHandler.GetCustomers)
		r.Get("/{id}", rosterHandler.GetCustomerByID)

		// GET /api/customers/{id}/bookings - Booking history
		r.Get("/{id}/bookings", bookingHandler.GetCustomerBookings)
	})

	r.Route("/api/guides", func(r chi.Router) {
		r.Post("/", rosterHandler.CreateGuide)
		r.Get("/", rosterHandler.GetGuides)
		r.Get("/{id}", rosterHandler.GetGuideByID)
		r.Put("/{id}", rosterHandler.UpdateGuide)
	})
}
