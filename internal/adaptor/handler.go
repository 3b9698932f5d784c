package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	Staffing     *StaffingHandler
	Availability *AvailabilityHandler
	Report       *ReportHandler
	Schedule     *ScheduleHandler
	Tour         *TourHandler
	Roster       *RosterHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Capacity, log),
		Staffing:     NewStaffingHandler(service.Staffing, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Report:       NewReportHandler(service.Report, log),
		Schedule:     NewScheduleHandler(service.Schedule, service.Capacity, log),
		Tour:         NewTourHandler(service.Tour, log),
		Roster:       NewRosterHandler(service.Customer, service.Guide, log),
	}
}

// handleServiceError maps service errors onto HTTP responses. All
// handlers share the same mapping.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrCapacityExceeded):
		log.Warn(operation+" failed - capacity exceeded",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrAlreadyAssigned),
		errors.Is(err, usecase.ErrNotAssigned),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - conflicting state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrScheduleNotBookable):
		log.Warn(operation+" failed - schedule not bookable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, errMsg)

	case errors.Is(err, usecase.ErrBusy):
		log.Warn(operation+" failed - schedule busy",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBusy(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "must be"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
