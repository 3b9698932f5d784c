package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTour(r chi.Router, tourHandler *adaptor.TourHandler, scheduleHandler *adaptor.ScheduleHandler) {
	r.Route("/api/tours", func(r chi.Router) {
		// POST /api/tours - Create tour
		r.Post("/", tourHandler.CreateTour)

		// GET /api/tours - List tours (paginated)
		r.Get("/", tourHandler.GetTours)

		// GET /api/tours/{id} - Tour details
		r.Get("/{id}", tourHandler.GetTourByID)

		// PUT /api/tours/{id} - Update tour
		r.Put("/{id}", tourHandler.UpdateTour)

		// DELETE /api/tours/{id} - Remove tour
		r.Delete("/{id}", tourHandler.DeleteTour)

		// GET /api/tours/{id}/schedules - Schedules of one tour
		r.Get("/{id}/schedules", scheduleHandler.GetTourSchedules)
	})
}
