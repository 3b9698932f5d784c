package repository

import (
	"tour-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tour       TourRepository
	Schedule   ScheduleRepository
	Booking    BookingRepository
	Assignment AssignmentRepository
	Customer   CustomerRepository
	Guide      GuideRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tour:       NewTourRepository(db, log),
		Schedule:   NewScheduleRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Assignment: NewAssignmentRepository(db, log),
		Customer:   NewCustomerRepository(db, log),
		Guide:      NewGuideRepository(db, log),
	}
}
