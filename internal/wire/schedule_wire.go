package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSchedule(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	bookingHandler *adaptor.BookingHandler,
	staffingHandler *adaptor.StaffingHandler,
) {
	r.Route("/api/schedules", func(r chi.Router) {
		// POST /api/schedules - Create schedule
		r.Post("/", scheduleHandler.CreateSchedule)

		// GET /api/schedules/{id} - Schedule with live counters
		r.Get("/{id}", scheduleHandler.GetScheduleByID)

		// PUT /api/schedules/{id}/status - Lifecycle transition
		r.Put("/{id}/status", scheduleHandler.UpdateScheduleStatus)

		// DELETE /api/schedules/{id} - Remove schedule
		r.Delete("/{id}", scheduleHandler.DeleteSchedule)

		// GET /api/schedules/{id}/capacity - Spots left
		r.Get("/{id}/capacity", scheduleHandler.GetAvailableCapacity)

		// GET /api/schedules/{id}/bookings - Bookings on a schedule
		r.Get("/{id}/bookings", bookingHandler.GetScheduleBookings)

		// GET /api/schedules/{id}/staffing - Staffing sufficiency
		r.Get("/{id}/staffing", staffingHandler.GetStaffing)

		// Guide assignment management per schedule
		r.Get("/{id}/guides", staffingHandler.GetScheduleAssignments)
		r.Post("/{id}/guides", staffingHandler.AssignGuide)
		r.Post("/{id}/guides/external", staffingHandler.AssignExternalGuide)
		r.Put("/{id}/guides/primary", staffingHandler.SetPrimaryGuide)
	})
}
