package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TourResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	BasePrice       float64   `json:"base_price"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func TourToResponse(tour *entity.Tour) TourResponse {
	return TourResponse{
		ID:              tour.ID.String(),
		Name:            tour.Name,
		Description:     tour.Description,
		DurationMinutes: tour.DurationMinutes,
		BasePrice:       tour.BasePrice,
		Currency:        tour.Currency,
		IsActive:        tour.IsActive,
		CreatedAt:       tour.CreatedAt,
	}
}
