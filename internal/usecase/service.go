package usecase

import (
	"context"
	"errors"
	"time"

	"tour-booking/internal/data/repository"
	"tour-booking/internal/events"
	"tour-booking/pkg/locks"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Capacity     CapacityService
	Staffing     StaffingService
	Availability AvailabilityService
	Report       ReportService
	Schedule     ScheduleService
	Tour         TourService
	Customer     CustomerService
	Guide        GuideService
}

func NewService(repo *repository.Repository, config *utils.Config, publisher events.Publisher, log *zap.Logger) *Service {
	// One lock per schedule, shared by the capacity and staffing
	// ledgers so every write against a schedule is linearized.
	lockMgr := locks.NewManager()
	lockWait := time.Duration(config.Lock.WaitMS) * time.Millisecond

	return &Service{
		Capacity:     NewCapacityService(repo, lockMgr, lockWait, log),
		Staffing:     NewStaffingService(repo, lockMgr, lockWait, config.Staffing, publisher, log),
		Availability: NewAvailabilityService(repo, log),
		Report:       NewReportService(repo, config.Staffing, log),
		Schedule:     NewScheduleService(repo, lockMgr, lockWait, config.Staffing, log),
		Tour:         NewTourService(repo, log),
		Customer:     NewCustomerService(repo.Customer, log),
		Guide:        NewGuideService(repo.Guide, log),
	}
}

// acquireScheduleLock maps lock-manager failures onto the service
// error taxonomy.
func acquireScheduleLock(ctx context.Context, mgr *locks.Manager, key string, wait time.Duration) (func(), error) {
	release, err := mgr.Acquire(ctx, key, wait)
	if err != nil {
		if errors.Is(err, locks.ErrWaitTimeout) {
			return nil, ErrBusy
		}
		return nil, err
	}
	return release, nil
}
