package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type GuideResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID.String(),
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	}
}

func GuideToResponse(guide *entity.Guide) GuideResponse {
	return GuideResponse{
		ID:        guide.ID.String(),
		Name:      guide.Name,
		Email:     guide.Email,
		Phone:     guide.Phone,
		IsActive:  guide.IsActive,
		CreatedAt: guide.CreatedAt,
	}
}
