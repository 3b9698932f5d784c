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

type StaffingHandler struct {
	service usecase.StaffingService
	log     *zap.Logger
}

func NewStaffingHandler(service usecase.StaffingService, log *zap.Logger) *StaffingHandler {
	return &StaffingHandler{
		service: service,
		log:     log.With(zap.String("handler", "staffing")),
	}
}

// AssignGuide handles POST /api/schedules/{id}/guides
func (h *StaffingHandler) AssignGuide(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	var req request.AssignGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	assignment, err := h.service.AssignGuide(r.Context(), scheduleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "assign guide")
		return
	}

	utils.ResponseCreated(w, "success", assignment)
}

// AssignExternalGuide handles POST /api/schedules/{id}/guides/external
func (h *StaffingHandler) AssignExternalGuide(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	var req request.AssignExternalGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	assignment, err := h.service.AssignExternalGuide(r.Context(), scheduleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "assign external guide")
		return
	}

	utils.ResponseCreated(w, "success", assignment)
}

// ConfirmAssignment handles PUT /api/assignments/{id}/confirm
func (h *StaffingHandler) ConfirmAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		utils.ResponseBadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.service.ConfirmAssignment(r.Context(), assignmentID); err != nil {
		handleServiceError(w, h.log, err, "confirm assignment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeclineAssignment handles PUT /api/assignments/{id}/decline
func (h *StaffingHandler) DeclineAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		utils.ResponseBadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.service.DeclineAssignment(r.Context(), assignmentID); err != nil {
		handleServiceError(w, h.log, err, "decline assignment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// RemoveAssignment handles DELETE /api/assignments/{id}
func (h *StaffingHandler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		utils.ResponseBadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.service.RemoveAssignment(r.Context(), assignmentID); err != nil {
		handleServiceError(w, h.log, err, "remove assignment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SetPrimaryGuide handles PUT /api/schedules/{id}/guides/primary
func (h *StaffingHandler) SetPrimaryGuide(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	var req request.SetPrimaryGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SetPrimaryGuide(r.Context(), scheduleID, &req); err != nil {
		handleServiceError(w, h.log, err, "set primary guide")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetScheduleAssignments handles GET /api/schedules/{id}/guides
func (h *StaffingHandler) GetScheduleAssignments(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	assignments, err := h.service.GetScheduleAssignments(r.Context(), scheduleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get schedule assignments")
		return
	}

	utils.ResponseSuccess(w, "success", assignments)
}

// GetStaffing handles GET /api/schedules/{id}/staffing
func (h *StaffingHandler) GetStaffing(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	staffing, err := h.service.GetStaffing(r.Context(), scheduleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get staffing")
		return
	}

	utils.ResponseSuccess(w, "success", staffing)
}
