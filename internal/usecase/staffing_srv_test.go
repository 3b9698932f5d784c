package usecase

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/pkg/locks"
	"tour-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStaffingService(store *fakeStore, publisher *fakePublisher, countPending bool) StaffingService {
	return NewStaffingService(store.repository(), locks.NewManager(), 2*time.Second,
		utils.StaffingConfig{CountPending: countPending}, publisher, zap.NewNop())
}

func TestAssignGuide(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 2, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")

	assignment, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID:   guide.ID.String(),
		IsPrimary: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AssignmentStatusPending, assignment.Status)
	assert.True(t, assignment.IsPrimary)
	assert.False(t, assignment.External)
	assert.Equal(t, "marco", assignment.GuideName)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, schedule.ID.String(), published[0].ScheduleID)
	assert.Equal(t, guide.ID.String(), published[0].GuideID)
	assert.Equal(t, "pending", published[0].Status)
}

func TestAssignGuideAutoConfirm(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")

	assignment, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID:     guide.ID.String(),
		AutoConfirm: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentStatusConfirmed, assignment.Status)
}

func TestAssignGuideTwiceRejected(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 2, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")

	_, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID: guide.ID.String(),
	})
	require.NoError(t, err)

	_, err = service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID: guide.ID.String(),
	})
	require.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssignGuideAfterDecline(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")

	first, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID: guide.ID.String(),
	})
	require.NoError(t, err)
	require.NoError(t, service.DeclineAssignment(context.Background(), first.ID))

	// A declined assignment no longer blocks re-assigning the same
	// guide.
	_, err = service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID: guide.ID.String(),
	})
	require.NoError(t, err)
}

func TestAssignGuideCancelledSchedule(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusCancelled)
	guide := store.addGuide("marco")

	_, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID: guide.ID.String(),
	})
	require.ErrorIs(t, err, ErrScheduleNotBookable)
	assert.Empty(t, publisher.published())
}

func TestAssignGuideUnknownGuide(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)

	_, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID: "b6c0f636-0e6a-4f5c-9e37-0e7b1c1f2a3d",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAssignGuidePublishFailureKeepsAssignment(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{fail: true}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")

	assignment, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID: guide.ID.String(),
	})
	require.NoError(t, err)

	assignments, err := service.GetScheduleAssignments(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, assignment.ID, assignments[0].ID)
}

func TestAssignExternalGuide(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)

	assignment, err := service.AssignExternalGuide(context.Background(), schedule.ID.String(), &request.AssignExternalGuideRequest{
		Name:        "Freelance Fred",
		Contact:     "+49 151 000000",
		AutoConfirm: true,
	})
	require.NoError(t, err)

	assert.True(t, assignment.External)
	assert.Nil(t, assignment.GuideID)
	require.NotNil(t, assignment.OutsourcedName)
	assert.Equal(t, "Freelance Fred", *assignment.OutsourcedName)
	assert.Equal(t, entity.AssignmentStatusConfirmed, assignment.Status)

	// Outsourced assignments never notify the guide app.
	assert.Empty(t, publisher.published())
}

func TestPrimaryGuideUniqueness(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 2, entity.ScheduleStatusScheduled)
	marco := store.addGuide("marco")
	nina := store.addGuide("nina")

	_, err := service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID:   marco.ID.String(),
		IsPrimary: true,
	})
	require.NoError(t, err)

	// Assigning a second primary demotes the first in the same
	// operation.
	_, err = service.AssignGuide(context.Background(), schedule.ID.String(), &request.AssignGuideRequest{
		GuideID:   nina.ID.String(),
		IsPrimary: true,
	})
	require.NoError(t, err)

	assignments, err := service.GetScheduleAssignments(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	primaries := 0
	for _, assignment := range assignments {
		if assignment.IsPrimary {
			primaries++
			assert.Equal(t, "nina", assignment.GuideName)
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestSetPrimaryGuide(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 2, entity.ScheduleStatusScheduled)
	marco := store.addGuide("marco")
	nina := store.addGuide("nina")
	store.addAssignment(schedule.ID, &marco.ID, true, entity.AssignmentStatusConfirmed)
	store.addAssignment(schedule.ID, &nina.ID, false, entity.AssignmentStatusConfirmed)

	require.NoError(t, service.SetPrimaryGuide(context.Background(), schedule.ID.String(), &request.SetPrimaryGuideRequest{
		GuideID: nina.ID.String(),
	}))

	assignments, err := service.GetScheduleAssignments(context.Background(), schedule.ID.String())
	require.NoError(t, err)

	for _, assignment := range assignments {
		assert.Equal(t, assignment.GuideName == "nina", assignment.IsPrimary)
	}
}

func TestSetPrimaryGuideNotAssigned(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")

	err := service.SetPrimaryGuide(context.Background(), schedule.ID.String(), &request.SetPrimaryGuideRequest{
		GuideID: guide.ID.String(),
	})
	require.ErrorIs(t, err, ErrNotAssigned)
}

func TestConfirmAssignment(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")
	assignment := store.addAssignment(schedule.ID, &guide.ID, false, entity.AssignmentStatusPending)

	require.NoError(t, service.ConfirmAssignment(context.Background(), assignment.ID.String()))

	// Confirmed is terminal for the confirm/decline pair.
	err := service.DeclineAssignment(context.Background(), assignment.ID.String())
	require.ErrorIs(t, err, ErrInvalidTransition)

	err = service.ConfirmAssignment(context.Background(), assignment.ID.String())
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeclinePrimaryClearsFlag(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")
	assignment := store.addAssignment(schedule.ID, &guide.ID, true, entity.AssignmentStatusPending)

	require.NoError(t, service.DeclineAssignment(context.Background(), assignment.ID.String()))

	assignments, err := service.GetScheduleAssignments(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, entity.AssignmentStatusDeclined, assignments[0].Status)
	assert.False(t, assignments[0].IsPrimary)
}

func TestRemoveAssignment(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestStaffingService(store, publisher, true)

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 1, entity.ScheduleStatusScheduled)
	guide := store.addGuide("marco")
	assignment := store.addAssignment(schedule.ID, &guide.ID, false, entity.AssignmentStatusConfirmed)

	require.NoError(t, service.RemoveAssignment(context.Background(), assignment.ID.String()))

	assignments, err := service.GetScheduleAssignments(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Empty(t, assignments)

	err = service.RemoveAssignment(context.Background(), assignment.ID.String())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetStaffing(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}

	tour := store.addTour("City Walk")
	schedule := store.addSchedule(tour.ID, time.Now().Add(24*time.Hour), 10, 2, entity.ScheduleStatusScheduled)
	marco := store.addGuide("marco")
	nina := store.addGuide("nina")
	otto := store.addGuide("otto")
	store.addAssignment(schedule.ID, &marco.ID, true, entity.AssignmentStatusConfirmed)
	store.addAssignment(schedule.ID, &nina.ID, false, entity.AssignmentStatusPending)
	store.addAssignment(schedule.ID, &otto.ID, false, entity.AssignmentStatusDeclined)

	// Pending counts toward the total under the default policy.
	service := newTestStaffingService(store, publisher, true)
	staffing, err := service.GetStaffing(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, staffing.GuidesAssigned)
	assert.True(t, staffing.FullyStaffed)

	// With the strict policy only confirmed assignments count.
	strict := newTestStaffingService(store, publisher, false)
	staffing, err = strict.GetStaffing(context.Background(), schedule.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, staffing.GuidesAssigned)
	assert.False(t, staffing.FullyStaffed)
}
