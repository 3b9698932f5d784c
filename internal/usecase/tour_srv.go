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

type TourService interface {
	CreateTour(ctx context.Context, req *request.TourRequest) (*response.TourResponse, error)
	GetTours(ctx context.Context, req *request.PaginatedRequest, activeOnly bool) (*response.PaginatedResponse[response.TourResponse], error)
	GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error)
	UpdateTour(ctx context.Context, tourID string, req *request.TourRequest) (*response.TourResponse, error)
	DeleteTour(ctx context.Context, tourID string) error
}

type tourService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTourService(repo *repository.Repository, log *zap.Logger) TourService {
	return &tourService{
		repo: repo,
		log:  log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) CreateTour(ctx context.Context, req *request.TourRequest) (*response.TourResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create tour validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	tour := &entity.Tour{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		BasePrice:       req.BasePrice,
		Currency:        req.Currency,
		IsActive:        req.IsActive,
	}

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		s.log.Error("Failed to create tour", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create tour: %w", err)
	}

	s.log.Info("Tour created",
		zap.String("tour_id", tour.ID.String()),
		zap.String("name", tour.Name),
	)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) GetTours(ctx context.Context, req *request.PaginatedRequest, activeOnly bool) (*response.PaginatedResponse[response.TourResponse], error) {
	tours, err := s.repo.Tour.FindAll(ctx, req.Limit(), req.Offset(), activeOnly)
	if err != nil {
		s.log.Error("Failed to get tours", zap.Error(err))
		return nil, fmt.Errorf("get tours: %w", err)
	}

	total, err := s.repo.Tour.CountAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("count tours: %w", err)
	}

	responses := make([]response.TourResponse, len(tours))
	for i, tour := range tours {
		responses[i] = response.TourToResponse(tour)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *tourService) GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, fmt.Errorf("invalid tour ID format %s: %w", tourID, err)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil {
		return nil, fmt.Errorf("tour %s: %w", tourID, ErrNotFound)
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) UpdateTour(ctx context.Context, tourID string, req *request.TourRequest) (*response.TourResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, fmt.Errorf("invalid tour ID format %s: %w", tourID, err)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil {
		return nil, fmt.Errorf("tour %s: %w", tourID, ErrNotFound)
	}

	tour.Name = req.Name
	tour.Description = req.Description
	tour.DurationMinutes = req.DurationMinutes
	tour.BasePrice = req.BasePrice
	tour.Currency = req.Currency
	tour.IsActive = req.IsActive
	tour.UpdatedAt = time.Now()

	if err := s.repo.Tour.Update(ctx, tour); err != nil {
		s.log.Error("Failed to update tour", zap.Error(err), zap.String("tour_id", tourID))
		return nil, fmt.Errorf("update tour %s: %w", tourID, err)
	}

	s.log.Info("Tour updated", zap.String("tour_id", tourID))

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) DeleteTour(ctx context.Context, tourID string) error {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return fmt.Errorf("invalid tour ID format %s: %w", tourID, err)
	}

	if err := s.repo.Tour.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete tour", zap.Error(err), zap.String("tour_id", tourID))
		return fmt.Errorf("delete tour %s: %w", tourID, err)
	}

	return nil
}
