package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error)
	GetCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error)
}

type GuideService interface {
	CreateGuide(ctx context.Context, req *request.GuideRequest) (*response.GuideResponse, error)
	GetGuides(ctx context.Context, req *request.PaginatedRequest, activeOnly bool) (*response.PaginatedResponse[response.GuideResponse], error)
	GetGuideByID(ctx context.Context, guideID string) (*response.GuideResponse, error)
	UpdateGuide(ctx context.Context, guideID string, req *request.GuideRequest) (*response.GuideResponse, error)
}

type customerService struct {
	customers repository.CustomerRepository
	log       *zap.Logger
}

func NewCustomerService(customers repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		customers: customers,
		log:       log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create customer validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		s.log.Error("Failed to create customer", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email),
	)

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) GetCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	customers, err := s.customers.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get customers", zap.Error(err))
		return nil, fmt.Errorf("get customers: %w", err)
	}

	total, err := s.customers.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	responses := make([]response.CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = response.CustomerToResponse(customer)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

type guideService struct {
	guides repository.GuideRepository
	log    *zap.Logger
}

func NewGuideService(guides repository.GuideRepository, log *zap.Logger) GuideService {
	return &guideService{
		guides: guides,
		log:    log.With(zap.String("service", "guide")),
	}
}

func (s *guideService) CreateGuide(ctx context.Context, req *request.GuideRequest) (*response.GuideResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create guide validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	guide := &entity.Guide{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	}

	if err := s.guides.Create(ctx, guide); err != nil {
		s.log.Error("Failed to create guide", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create guide: %w", err)
	}

	s.log.Info("Guide created",
		zap.String("guide_id", guide.ID.String()),
		zap.String("email", guide.Email),
	)

	resp := response.GuideToResponse(guide)
	return &resp, nil
}

func (s *guideService) GetGuides(ctx context.Context, req *request.PaginatedRequest, activeOnly bool) (*response.PaginatedResponse[response.GuideResponse], error) {
	guides, err := s.guides.FindAll(ctx, req.Limit(), req.Offset(), activeOnly)
	if err != nil {
		s.log.Error("Failed to get guides", zap.Error(err))
		return nil, fmt.Errorf("get guides: %w", err)
	}

	total, err := s.guides.CountAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("count guides: %w", err)
	}

	responses := make([]response.GuideResponse, len(guides))
	for i, guide := range guides {
		responses[i] = response.GuideToResponse(guide)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *guideService) GetGuideByID(ctx context.Context, guideID string) (*response.GuideResponse, error) {
	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	guide, err := s.guides.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find guide: %w", err)
	}
	if guide == nil {
		return nil, fmt.Errorf("guide %s: %w", guideID, ErrNotFound)
	}

	resp := response.GuideToResponse(guide)
	return &resp, nil
}

func (s *guideService) UpdateGuide(ctx context.Context, guideID string, req *request.GuideRequest) (*response.GuideResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	guide, err := s.guides.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find guide: %w", err)
	}
	if guide == nil {
		return nil, fmt.Errorf("guide %s: %w", guideID, ErrNotFound)
	}

	guide.Name = req.Name
	guide.Email = req.Email
	guide.Phone = req.Phone
	guide.IsActive = req.IsActive
	guide.UpdatedAt = time.Now()

	if err := s.guides.Update(ctx, guide); err != nil {
		s.log.Error("Failed to update guide", zap.Error(err), zap.String("guide_id", guideID))
		return nil, fmt.Errorf("update guide %s: %w", guideID, err)
	}

	s.log.Info("Guide updated", zap.String("guide_id", guideID))

	resp := response.GuideToResponse(guide)
	return &resp, nil
}
