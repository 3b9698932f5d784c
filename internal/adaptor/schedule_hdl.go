package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service  usecase.ScheduleService
	capacity usecase.CapacityService
	log      *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, capacity usecase.CapacityService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service:  service,
		capacity: capacity,
		log:      log.With(zap.String("handler", "schedule")),
	}
}

// CreateSchedule handles POST /api/schedules
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	schedule, err := h.service.CreateSchedule(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, "success", schedule)
}

// GetScheduleByID handles GET /api/schedules/{id}
func (h *ScheduleHandler) GetScheduleByID(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	schedule, err := h.service.GetScheduleByID(r.Context(), scheduleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get schedule by ID")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}

// GetTourSchedules handles GET /api/tours/{id}/schedules
func (h *ScheduleHandler) GetTourSchedules(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")
	if tourID == "" {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	schedules, err := h.service.GetTourSchedules(r.Context(), tourID)
	if err != nil {
		handleServiceError(w, h.log, err, "get tour schedules")
		return
	}

	utils.ResponseSuccess(w, "success", schedules)
}

// GetAvailableCapacity handles GET /api/schedules/{id}/capacity
func (h *ScheduleHandler) GetAvailableCapacity(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	available, err := h.capacity.GetAvailableCapacity(r.Context(), scheduleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get available capacity")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int{"available_spots": available})
}

// UpdateScheduleStatus handles PUT /api/schedules/{id}/status
func (h *ScheduleHandler) UpdateScheduleStatus(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	var req request.UpdateScheduleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateScheduleStatus(r.Context(), scheduleID, &req); err != nil {
		handleServiceError(w, h.log, err, "update schedule status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteSchedule handles DELETE /api/schedules/{id}
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	if err := h.service.DeleteSchedule(r.Context(), scheduleID); err != nil {
		handleServiceError(w, h.log, err, "delete schedule")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
