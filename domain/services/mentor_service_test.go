package services

import (
	"context"
	"testing"
	"time"

	"mentorhub/domain/entities"
	"mentorhub/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMentorService_CreateMentor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("new profile starts active", func(t *testing.T) {
		t.Parallel()
		mentorRepo := new(testhelpers.MockMentorRepository)
		mentorRepo.On("Create", ctx, mock.AnythingOfType("*entities.Mentor")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entities.Mentor).ID = 3
			}).Return(nil)

		service := NewMentorService(mentorRepo, new(testhelpers.MockAppointmentRepository))
		mentor, err := service.CreateMentor(ctx, 20, "distributed systems", []string{"go"}, 120, 4)

		require.NoError(t, err)
		assert.Equal(t, int64(3), mentor.ID)
		assert.Equal(t, entities.MentorStatusActive, mentor.Status)
		assert.Equal(t, 4, mentor.MaxSessionsPerDay)
	})

	t.Run("missing session cap falls back to default", func(t *testing.T) {
		t.Parallel()
		mentorRepo := new(testhelpers.MockMentorRepository)
		mentorRepo.On("Create", ctx, mock.AnythingOfType("*entities.Mentor")).Return(nil)

		service := NewMentorService(mentorRepo, new(testhelpers.MockAppointmentRepository))
		mentor, err := service.CreateMentor(ctx, 20, "", nil, 120, 0)

		require.NoError(t, err)
		assert.Equal(t, 5, mentor.MaxSessionsPerDay)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		t.Parallel()
		service := NewMentorService(new(testhelpers.MockMentorRepository), new(testhelpers.MockAppointmentRepository))

		_, err := service.CreateMentor(ctx, 20, "", nil, -1, 4)
		assert.Error(t, err)
	})
}

func TestMentorService_UpdateMentorProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil fields keep existing values", func(t *testing.T) {
		t.Parallel()
		mentorRepo := new(testhelpers.MockMentorRepository)
		existing := &entities.Mentor{
			ID:                3,
			Bio:               "original bio",
			ExpertiseAreas:    []string{"go"},
			HourlyRate:        120,
			MaxSessionsPerDay: 4,
		}
		mentorRepo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		mentorRepo.On("Update", ctx, existing).Return(nil)

		newRate := int64(150)
		service := NewMentorService(mentorRepo, new(testhelpers.MockAppointmentRepository))
		mentor, err := service.UpdateMentorProfile(ctx, 3, nil, nil, &newRate, nil)

		require.NoError(t, err)
		assert.Equal(t, "original bio", mentor.Bio)
		assert.Equal(t, []string{"go"}, mentor.ExpertiseAreas)
		assert.Equal(t, int64(150), mentor.HourlyRate)
		assert.Equal(t, 4, mentor.MaxSessionsPerDay)
	})

	t.Run("unknown mentor", func(t *testing.T) {
		t.Parallel()
		mentorRepo := new(testhelpers.MockMentorRepository)
		mentorRepo.On("GetByID", ctx, int64(3)).Return(nil, nil)

		service := NewMentorService(mentorRepo, new(testhelpers.MockAppointmentRepository))
		_, err := service.UpdateMentorProfile(ctx, 3, nil, nil, nil, nil)

		assert.ErrorIs(t, err, entities.ErrMentorNotFound)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		t.Parallel()
		mentorRepo := new(testhelpers.MockMentorRepository)
		existing := &entities.Mentor{ID: 3, HourlyRate: 120}
		mentorRepo.On("GetByID", ctx, int64(3)).Return(existing, nil)

		badRate := int64(-5)
		service := NewMentorService(mentorRepo, new(testhelpers.MockAppointmentRepository))
		_, err := service.UpdateMentorProfile(ctx, 3, nil, nil, &badRate, nil)

		assert.Error(t, err)
		mentorRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestMentorService_GetMentorSchedule_DropsCancelled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	appointmentRepo := new(testhelpers.MockAppointmentRepository)

	appointments := []*entities.Appointment{
		{ID: 1, Status: entities.AppointmentStatusPending},
		{ID: 2, Status: entities.AppointmentStatusCancelled},
		{ID: 3, Status: entities.AppointmentStatusConfirmed},
		{ID: 4, Status: entities.AppointmentStatusCompleted},
	}
	appointmentRepo.On("GetByMentorAndDay", ctx, int64(3), day).Return(appointments, nil)

	service := NewMentorService(new(testhelpers.MockMentorRepository), appointmentRepo)
	schedule, err := service.GetMentorSchedule(ctx, 3, day)

	require.NoError(t, err)
	require.Len(t, schedule, 3)
	for _, apt := range schedule {
		assert.NotEqual(t, entities.AppointmentStatusCancelled, apt.Status)
	}
}
