package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/events"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Postgres repositories so
// the services can be exercised without a database. All methods copy
// on the way in and out, matching the row-scan behavior of the real
// repositories.
type fakeStore struct {
	mu          sync.Mutex
	tours       map[uuid.UUID]*entity.Tour
	schedules   map[uuid.UUID]*entity.Schedule
	bookings    map[uuid.UUID]*entity.Booking
	assignments map[uuid.UUID]*entity.GuideAssignment
	customers   map[uuid.UUID]*entity.Customer
	guides      map[uuid.UUID]*entity.Guide
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tours:       make(map[uuid.UUID]*entity.Tour),
		schedules:   make(map[uuid.UUID]*entity.Schedule),
		bookings:    make(map[uuid.UUID]*entity.Booking),
		assignments: make(map[uuid.UUID]*entity.GuideAssignment),
		customers:   make(map[uuid.UUID]*entity.Customer),
		guides:      make(map[uuid.UUID]*entity.Guide),
	}
}

func (s *fakeStore) repository() *repository.Repository {
	return &repository.Repository{
		Tour:       &fakeTourRepo{s},
		Schedule:   &fakeScheduleRepo{s},
		Booking:    &fakeBookingRepo{s},
		Assignment: &fakeAssignmentRepo{s},
		Customer:   &fakeCustomerRepo{s},
		Guide:      &fakeGuideRepo{s},
	}
}

func (s *fakeStore) addTour(name string) *entity.Tour {
	s.mu.Lock()
	defer s.mu.Unlock()
	tour := &entity.Tour{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:            name,
		DurationMinutes: 120,
		BasePrice:       50,
		Currency:        "EUR",
		IsActive:        true,
	}
	s.tours[tour.ID] = tour
	return tour
}

func (s *fakeStore) addSchedule(tourID uuid.UUID, startsAt time.Time, maxParticipants, guidesRequired int, status entity.ScheduleStatus) *entity.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	schedule := &entity.Schedule{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		TourID:          tourID,
		StartsAt:        startsAt,
		EndsAt:          startsAt.Add(2 * time.Hour),
		MaxParticipants: maxParticipants,
		GuidesRequired:  guidesRequired,
		Price:           50,
		Currency:        "EUR",
		Status:          status,
	}
	s.schedules[schedule.ID] = schedule
	return schedule
}

func (s *fakeStore) addCustomer(name string) *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer := &entity.Customer{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:  name,
		Email: name + "@example.com",
	}
	s.customers[customer.ID] = customer
	return customer
}

func (s *fakeStore) addGuide(name string) *entity.Guide {
	s.mu.Lock()
	defer s.mu.Unlock()
	guide := &entity.Guide{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:     name,
		Email:    name + "@example.com",
		IsActive: true,
	}
	s.guides[guide.ID] = guide
	return guide
}

func (s *fakeStore) addBooking(scheduleID, customerID uuid.UUID, participants int, status entity.BookingStatus) *entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference:     "TOUR-TEST",
		ScheduleID:    scheduleID,
		CustomerID:    customerID,
		Participants:  participants,
		Status:        status,
		PaymentStatus: "unpaid",
	}
	s.bookings[booking.ID] = booking
	return booking
}

func (s *fakeStore) addAssignment(scheduleID uuid.UUID, guideID *uuid.UUID, isPrimary bool, status entity.AssignmentStatus) *entity.GuideAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment := &entity.GuideAssignment{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		ScheduleID: scheduleID,
		GuideID:    guideID,
		IsPrimary:  isPrimary,
		Status:     status,
	}
	s.assignments[assignment.ID] = assignment
	return assignment
}

type fakeTourRepo struct{ s *fakeStore }

func (r *fakeTourRepo) Create(_ context.Context, tour *entity.Tour) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *tour
	r.s.tours[tour.ID] = &copied
	return nil
}

func (r *fakeTourRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tour, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tour, ok := r.s.tours[id]
	if !ok {
		return nil, nil
	}
	copied := *tour
	return &copied, nil
}

func (r *fakeTourRepo) FindAll(_ context.Context, limit, offset int, activeOnly bool) ([]*entity.Tour, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var tours []*entity.Tour
	for _, tour := range r.s.tours {
		if activeOnly && !tour.IsActive {
			continue
		}
		copied := *tour
		tours = append(tours, &copied)
	}
	sort.Slice(tours, func(i, j int) bool { return tours[i].Name < tours[j].Name })
	return paginate(tours, limit, offset), nil
}

func (r *fakeTourRepo) CountAll(_ context.Context, activeOnly bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, tour := range r.s.tours {
		if activeOnly && !tour.IsActive {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeTourRepo) Update(_ context.Context, tour *entity.Tour) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *tour
	r.s.tours[tour.ID] = &copied
	return nil
}

func (r *fakeTourRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tours, id)
	return nil
}

type fakeScheduleRepo struct{ s *fakeStore }

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *entity.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *schedule
	r.s.schedules[schedule.ID] = &copied
	return nil
}

func (r *fakeScheduleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	schedule, ok := r.s.schedules[id]
	if !ok {
		return nil, nil
	}
	copied := *schedule
	return &copied, nil
}

func (r *fakeScheduleRepo) FindByTourID(_ context.Context, tourID uuid.UUID) ([]*entity.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var schedules []*entity.Schedule
	for _, schedule := range r.s.schedules {
		if schedule.TourID != tourID {
			continue
		}
		copied := *schedule
		schedules = append(schedules, &copied)
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].StartsAt.Before(schedules[j].StartsAt) })
	return schedules, nil
}

func (r *fakeScheduleRepo) FindInRange(_ context.Context, from, to time.Time, tourIDs []uuid.UUID, statuses []entity.ScheduleStatus) ([]*entity.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var schedules []*entity.Schedule
	for _, schedule := range r.s.schedules {
		if schedule.StartsAt.Before(from) || !schedule.StartsAt.Before(to) {
			continue
		}
		if len(tourIDs) > 0 && !containsUUID(tourIDs, schedule.TourID) {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, schedule.Status) {
			continue
		}
		copied := *schedule
		schedules = append(schedules, &copied)
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].StartsAt.Before(schedules[j].StartsAt) })
	return schedules, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, schedule *entity.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *schedule
	r.s.schedules[schedule.ID] = &copied
	return nil
}

func (r *fakeScheduleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ScheduleStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if schedule, ok := r.s.schedules[id]; ok {
		schedule.Status = status
		schedule.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.schedules, id)
	return nil
}

type fakeBookingRepo struct{ s *fakeStore }

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *booking
	r.s.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindByScheduleID(_ context.Context, scheduleID uuid.UUID) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var bookings []*entity.Booking
	for _, booking := range r.s.bookings {
		if booking.ScheduleID != scheduleID {
			continue
		}
		copied := *booking
		bookings = append(bookings, &copied)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.Before(bookings[j].CreatedAt) })
	return bookings, nil
}

func (r *fakeBookingRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var bookings []*entity.Booking
	for _, booking := range r.s.bookings {
		if booking.CustomerID != customerID {
			continue
		}
		copied := *booking
		bookings = append(bookings, &copied)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.Before(bookings[j].CreatedAt) })
	return paginate(bookings, limit, offset), nil
}

func (r *fakeBookingRepo) CountByCustomerID(_ context.Context, customerID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, booking := range r.s.bookings {
		if booking.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if booking, ok := r.s.bookings[bookingID]; ok {
		booking.Status = status
		booking.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeBookingRepo) SumActiveParticipants(_ context.Context, scheduleID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := 0
	for _, booking := range r.s.bookings {
		if booking.ScheduleID == scheduleID && booking.CountsTowardCapacity() {
			sum += booking.Participants
		}
	}
	return sum, nil
}

func (r *fakeBookingRepo) SumActiveParticipantsFor(_ context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sums := make(map[uuid.UUID]int)
	for _, booking := range r.s.bookings {
		if containsUUID(scheduleIDs, booking.ScheduleID) && booking.CountsTowardCapacity() {
			sums[booking.ScheduleID] += booking.Participants
		}
	}
	return sums, nil
}

type fakeAssignmentRepo struct{ s *fakeStore }

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *entity.GuideAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *assignment
	r.s.assignments[assignment.ID] = &copied
	return nil
}

func (r *fakeAssignmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.GuideAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assignment, ok := r.s.assignments[id]
	if !ok {
		return nil, nil
	}
	copied := *assignment
	return &copied, nil
}

func (r *fakeAssignmentRepo) FindByScheduleID(_ context.Context, scheduleID uuid.UUID) ([]*entity.GuideAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var assignments []*entity.GuideAssignment
	for _, assignment := range r.s.assignments {
		if assignment.ScheduleID != scheduleID {
			continue
		}
		copied := *assignment
		assignments = append(assignments, &copied)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].CreatedAt.Before(assignments[j].CreatedAt) })
	return assignments, nil
}

func (r *fakeAssignmentRepo) FindActiveByGuide(_ context.Context, scheduleID, guideID uuid.UUID) (*entity.GuideAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, assignment := range r.s.assignments {
		if assignment.ScheduleID == scheduleID && assignment.GuideID != nil &&
			*assignment.GuideID == guideID && assignment.IsActive() {
			copied := *assignment
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AssignmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if assignment, ok := r.s.assignments[id]; ok {
		assignment.Status = status
		assignment.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeAssignmentRepo) SetPrimary(_ context.Context, id uuid.UUID, isPrimary bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if assignment, ok := r.s.assignments[id]; ok {
		assignment.IsPrimary = isPrimary
	}
	return nil
}

func (r *fakeAssignmentRepo) DemotePrimary(_ context.Context, scheduleID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, assignment := range r.s.assignments {
		if assignment.ScheduleID == scheduleID {
			assignment.IsPrimary = false
		}
	}
	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) CountActive(_ context.Context, scheduleID uuid.UUID, includePending bool) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.countLocked(scheduleID, includePending), nil
}

func (r *fakeAssignmentRepo) CountActiveFor(_ context.Context, scheduleIDs []uuid.UUID, includePending bool) (map[uuid.UUID]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, id := range scheduleIDs {
		counts[id] = r.countLocked(id, includePending)
	}
	return counts, nil
}

func (r *fakeAssignmentRepo) CountPendingFor(_ context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, assignment := range r.s.assignments {
		if containsUUID(scheduleIDs, assignment.ScheduleID) && assignment.Status == entity.AssignmentStatusPending {
			counts[assignment.ScheduleID]++
		}
	}
	return counts, nil
}

func (r *fakeAssignmentRepo) countLocked(scheduleID uuid.UUID, includePending bool) int {
	count := 0
	for _, assignment := range r.s.assignments {
		if assignment.ScheduleID != scheduleID {
			continue
		}
		switch assignment.Status {
		case entity.AssignmentStatusConfirmed:
			count++
		case entity.AssignmentStatusPending:
			if includePending {
				count++
			}
		}
	}
	return count
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *customer
	r.s.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	customer, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *customer
	return &copied, nil
}

func (r *fakeCustomerRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var customers []*entity.Customer
	for _, customer := range r.s.customers {
		copied := *customer
		customers = append(customers, &copied)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return paginate(customers, limit, offset), nil
}

func (r *fakeCustomerRepo) CountAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.customers)), nil
}

type fakeGuideRepo struct{ s *fakeStore }

func (r *fakeGuideRepo) Create(_ context.Context, guide *entity.Guide) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *guide
	r.s.guides[guide.ID] = &copied
	return nil
}

func (r *fakeGuideRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Guide, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	guide, ok := r.s.guides[id]
	if !ok {
		return nil, nil
	}
	copied := *guide
	return &copied, nil
}

func (r *fakeGuideRepo) FindAll(_ context.Context, limit, offset int, activeOnly bool) ([]*entity.Guide, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var guides []*entity.Guide
	for _, guide := range r.s.guides {
		if activeOnly && !guide.IsActive {
			continue
		}
		copied := *guide
		guides = append(guides, &copied)
	}
	sort.Slice(guides, func(i, j int) bool { return guides[i].Name < guides[j].Name })
	return paginate(guides, limit, offset), nil
}

func (r *fakeGuideRepo) CountAll(_ context.Context, activeOnly bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, guide := range r.s.guides {
		if activeOnly && !guide.IsActive {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeGuideRepo) Update(_ context.Context, guide *entity.Guide) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *guide
	r.s.guides[guide.ID] = &copied
	return nil
}

// fakePublisher records published events for assertions.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.GuideAssignedEvent
	fail   bool
}

func (p *fakePublisher) PublishGuideAssigned(_ context.Context, event events.GuideAssignedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errBrokerDown
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []events.GuideAssignedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.GuideAssignedEvent, len(p.events))
	copy(out, p.events)
	return out
}

var errBrokerDown = errors.New("broker down")

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsStatus(statuses []entity.ScheduleStatus, status entity.ScheduleStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}
