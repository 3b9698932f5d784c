package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStaffing(r chi.Router, staffingHandler *adaptor.StaffingHandler) {
	r.Route("/api/assignments", func(r chi.Router) {
		// PUT /api/assignments/{id}/confirm - Guide accepts
		r.Put("/{id}/confirm", staffingHandler.ConfirmAssignment)

		// PUT /api/assignments/{id}/decline - Guide declines
		r.Put("/{id}/decline", staffingHandler.DeclineAssignment)

		// DELETE /api/assignments/{id} - Remove assignment
		r.Delete("/{id}", staffingHandler.RemoveAssignment)
	})
}
