package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReport(r chi.Router, reportHandler *adaptor.ReportHandler) {
	r.Route("/api/reports", func(r chi.Router) {
		// GET /api/reports/heatmap - Utilization per tour per day
		r.Get("/heatmap", reportHandler.GetHeatmap)

		// GET /api/reports/alerts - Staffing and capacity alerts
		r.Get("/alerts", reportHandler.GetAlerts)
	})
}
