package request

type CreateScheduleRequest struct {
	TourID          string  `json:"tour_id" validate:"required,uuid4"`
	StartsAt        string  `json:"starts_at" validate:"required"`
	EndsAt          string  `json:"ends_at" validate:"required"`
	MaxParticipants int     `json:"max_participants" validate:"gte=0"`
	GuidesRequired  int     `json:"guides_required" validate:"gte=0"`
	Price           float64 `json:"price" validate:"gte=0"`
	Currency        string  `json:"currency" validate:"required,len=3"`
}

type UpdateScheduleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
}
