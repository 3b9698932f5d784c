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

// RosterHandler serves the customer and guide directories.
type RosterHandler struct {
	customers usecase.CustomerService
	guides    usecase.GuideService
	log       *zap.Logger
}

func NewRosterHandler(customers usecase.CustomerService, guides usecase.GuideService, log *zap.Logger) *RosterHandler {
	return &RosterHandler{
		customers: customers,
		guides:    guides,
		log:       log.With(zap.String("handler", "roster")),
	}
}

// CreateCustomer handles POST /api/customers
func (h *RosterHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	customer, err := h.customers.CreateCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "success", customer)
}

// GetCustomers handles GET /api/customers
func (h *RosterHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	customers, err := h.customers.GetCustomers(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get customers")
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}

// GetCustomerByID handles GET /api/customers/{id}
func (h *RosterHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	customer, err := h.customers.GetCustomerByID(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get customer by ID")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// CreateGuide handles POST /api/guides
func (h *RosterHandler) CreateGuide(w http.ResponseWriter, r *http.Request) {
	var req request.GuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	guide, err := h.guides.CreateGuide(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create guide")
		return
	}

	utils.ResponseCreated(w, "success", guide)
}

// GetGuides handles GET /api/guides
func (h *RosterHandler) GetGuides(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
	activeOnly := query.Get("include_inactive") != "true"

	guides, err := h.guides.GetGuides(r.Context(), req, activeOnly)
	if err != nil {
		handleServiceError(w, h.log, err, "get guides")
		return
	}

	utils.ResponseSuccess(w, "success", guides)
}

// GetGuideByID handles GET /api/guides/{id}
func (h *RosterHandler) GetGuideByID(w http.ResponseWriter, r *http.Request) {
	guideID := chi.URLParam(r, "id")
	if guideID == "" {
		utils.ResponseBadRequest(w, "Guide ID is required", nil)
		return
	}

	guide, err := h.guides.GetGuideByID(r.Context(), guideID)
	if err != nil {
		handleServiceError(w, h.log, err, "get guide by ID")
		return
	}

	utils.ResponseSuccess(w, "success", guide)
}

// UpdateGuide handles PUT /api/guides/{id}
func (h *RosterHandler) UpdateGuide(w http.ResponseWriter, r *http.Request) {
	guideID := chi.URLParam(r, "id")
	if guideID == "" {
		utils.ResponseBadRequest(w, "Guide ID is required", nil)
		return
	}

	var req request.GuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	guide, err := h.guides.UpdateGuide(r.Context(), guideID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update guide")
		return
	}

	utils.ResponseSuccess(w, "success", guide)
}
