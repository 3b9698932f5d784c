package adaptor

import (
	"net/http"
	"time"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// Search handles GET /api/availability
//
// Query parameters: date_from and date_to (YYYY-MM-DD, default today
// and today+14), participants (default 1), tour_id (optional).
func (h *AvailabilityHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	today := time.Now().Truncate(24 * time.Hour)
	dateFrom := utils.ParseDate(query.Get("date_from"), today)
	dateTo := utils.ParseDate(query.Get("date_to"), dateFrom.AddDate(0, 0, 14))

	if dateTo.Before(dateFrom) {
		utils.ResponseBadRequest(w, "date_to must not be before date_from", nil)
		return
	}

	participants := utils.ParseInt(query.Get("participants"), 1)

	var tourID *uuid.UUID
	if raw := query.Get("tour_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid tour_id", nil)
			return
		}
		tourID = &parsed
	}

	days, err := h.service.Search(r.Context(), dateFrom, dateTo, participants, tourID)
	if err != nil {
		handleServiceError(w, h.log, err, "search availability")
		return
	}

	utils.ResponseSuccess(w, "success", days)
}
