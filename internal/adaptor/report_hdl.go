package adaptor

import (
	"net/http"
	"strings"
	"time"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// GetHeatmap handles GET /api/reports/heatmap
//
// Query parameters: date_from and date_to (YYYY-MM-DD, default today
// and today+30), tour_ids (comma-separated, default all active tours).
func (h *ReportHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	today := time.Now().Truncate(24 * time.Hour)
	dateFrom := utils.ParseDate(query.Get("date_from"), today)
	dateTo := utils.ParseDate(query.Get("date_to"), dateFrom.AddDate(0, 0, 30))

	if dateTo.Before(dateFrom) {
		utils.ResponseBadRequest(w, "date_to must not be before date_from", nil)
		return
	}

	var tourIDs []uuid.UUID
	if raw := query.Get("tour_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			parsed, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid tour_ids", nil)
				return
			}
			tourIDs = append(tourIDs, parsed)
		}
	}

	heatmap, err := h.service.BuildHeatmap(r.Context(), dateFrom, dateTo, tourIDs)
	if err != nil {
		handleServiceError(w, h.log, err, "build heatmap")
		return
	}

	utils.ResponseSuccess(w, "success", heatmap)
}

// GetAlerts handles GET /api/reports/alerts
//
// Query parameters: date_from and date_to (YYYY-MM-DD, default today
// and today+7).
func (h *ReportHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	today := time.Now().Truncate(24 * time.Hour)
	dateFrom := utils.ParseDate(query.Get("date_from"), today)
	dateTo := utils.ParseDate(query.Get("date_to"), dateFrom.AddDate(0, 0, 7))

	if dateTo.Before(dateFrom) {
		utils.ResponseBadRequest(w, "date_to must not be before date_from", nil)
		return
	}

	alerts, err := h.service.GetAlerts(r.Context(), dateFrom, dateTo)
	if err != nil {
		handleServiceError(w, h.log, err, "get alerts")
		return
	}

	utils.ResponseSuccess(w, "success", alerts)
}
