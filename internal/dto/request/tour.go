package request

type TourRequest struct {
	Name            string  `json:"name" validate:"required,min=2"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1"`
	BasePrice       float64 `json:"base_price" validate:"gte=0"`
	Currency        string  `json:"currency" validate:"required,len=3"`
	IsActive        bool    `json:"is_active"`
}
