package request

type CreateBookingRequest struct {
	ScheduleID   string `json:"schedule_id" validate:"required,uuid4"`
	CustomerID   string `json:"customer_id" validate:"required,uuid4"`
	Participants int    `json:"participants" validate:"required,min=1"`
}
