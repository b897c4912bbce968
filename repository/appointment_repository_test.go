package repository

import (
	"context"
	"testing"
	"time"

	"mentorhub/domain/entities"
	"mentorhub/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	mentorRepo := NewMentorRepository(testDB.DB)
	repo := NewAppointmentRepository(testDB.DB)
	ctx := context.Background()

	mentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, mentorRepo.Create(ctx, mentor))

	t.Run("absent appointment returns nil", func(t *testing.T) {
		appointment, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, appointment)
	})

	t.Run("create fills id and timestamps", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		appointment := testutil.CreateTestAppointment(mentor.ID, 20, start, time.Hour)
		err := repo.Create(ctx, appointment)
		require.NoError(t, err)
		assert.NotZero(t, appointment.ID)
		assert.False(t, appointment.CreatedAt.IsZero())

		fetched, err := repo.GetByID(ctx, appointment.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, mentor.ID, fetched.MentorID)
		assert.Equal(t, entities.AppointmentStatusPending, fetched.Status)
		assert.True(t, fetched.StartTime.Equal(start))
		assert.True(t, fetched.EndTime.Equal(start.Add(time.Hour)))
		assert.Nil(t, fetched.ProjectGroupID)
		assert.Nil(t, fetched.MeetingURL)
	})

	t.Run("unknown mentor is rejected", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
		appointment := testutil.CreateTestAppointment(9999, 20, start, time.Hour)
		err := repo.Create(ctx, appointment)
		assert.Error(t, err)
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
		appointment := testutil.CreateTestAppointment(mentor.ID, 20, start, -time.Hour)
		err := repo.Create(ctx, appointment)
		assert.Error(t, err)
	})
}

func TestAppointmentRepository_GetConflicting(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	mentorRepo := NewMentorRepository(testDB.DB)
	repo := NewAppointmentRepository(testDB.DB)
	ctx := context.Background()

	mentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, mentorRepo.Create(ctx, mentor))

	at := func(hour int) time.Time {
		return time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
	}

	booked := testutil.CreateTestAppointment(mentor.ID, 20, at(10), time.Hour)
	require.NoError(t, repo.Create(ctx, booked))

	cancelled := testutil.CreateTestAppointment(mentor.ID, 21, at(14), time.Hour)
	cancelled.Status = entities.AppointmentStatusCancelled
	require.NoError(t, repo.Create(ctx, cancelled))

	t.Run("overlapping interval conflicts", func(t *testing.T) {
		conflicts, err := repo.GetConflicting(ctx, mentor.ID, at(10).Add(30*time.Minute), at(11).Add(30*time.Minute))
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		assert.Equal(t, booked.ID, conflicts[0].ID)
	})

	t.Run("containing interval conflicts", func(t *testing.T) {
		conflicts, err := repo.GetConflicting(ctx, mentor.ID, at(9), at(12))
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
	})

	t.Run("back to back does not conflict", func(t *testing.T) {
		conflicts, err := repo.GetConflicting(ctx, mentor.ID, at(11), at(12))
		require.NoError(t, err)
		assert.Empty(t, conflicts)

		conflicts, err = repo.GetConflicting(ctx, mentor.ID, at(9), at(10))
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("cancelled appointment does not conflict", func(t *testing.T) {
		conflicts, err := repo.GetConflicting(ctx, mentor.ID, at(14), at(15))
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("other mentor's calendar is untouched", func(t *testing.T) {
		other := testutil.CreateTestMentor(11, 100)
		require.NoError(t, mentorRepo.Create(ctx, other))

		conflicts, err := repo.GetConflicting(ctx, other.ID, at(10), at(11))
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})
}

func TestAppointmentRepository_GetByMentorAndDay(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	mentorRepo := NewMentorRepository(testDB.DB)
	repo := NewAppointmentRepository(testDB.DB)
	ctx := context.Background()

	mentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, mentorRepo.Create(ctx, mentor))

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	lateMonday := testutil.CreateTestAppointment(mentor.ID, 20, monday.Add(17*time.Hour), time.Hour)
	require.NoError(t, repo.Create(ctx, lateMonday))
	earlyMonday := testutil.CreateTestAppointment(mentor.ID, 21, monday.Add(9*time.Hour), time.Hour)
	require.NoError(t, repo.Create(ctx, earlyMonday))
	tuesday := testutil.CreateTestAppointment(mentor.ID, 22, monday.AddDate(0, 0, 1).Add(9*time.Hour), time.Hour)
	require.NoError(t, repo.Create(ctx, tuesday))

	t.Run("returns the day's appointments in start order", func(t *testing.T) {
		schedule, err := repo.GetByMentorAndDay(ctx, mentor.ID, monday.Add(12*time.Hour))
		require.NoError(t, err)
		require.Len(t, schedule, 2)
		assert.Equal(t, earlyMonday.ID, schedule[0].ID)
		assert.Equal(t, lateMonday.ID, schedule[1].ID)
	})

	t.Run("empty day", func(t *testing.T) {
		schedule, err := repo.GetByMentorAndDay(ctx, mentor.ID, monday.AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.Empty(t, schedule)
	})
}

func TestAppointmentRepository_Listings(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	mentorRepo := NewMentorRepository(testDB.DB)
	repo := NewAppointmentRepository(testDB.DB)
	ctx := context.Background()

	mentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, mentorRepo.Create(ctx, mentor))

	at := func(hour int) time.Time {
		return time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
	}

	groupID := int64(7)
	grouped := testutil.CreateTestAppointment(mentor.ID, 20, at(9), time.Hour)
	grouped.ProjectGroupID = &groupID
	require.NoError(t, repo.Create(ctx, grouped))

	solo := testutil.CreateTestAppointment(mentor.ID, 21, at(11), time.Hour)
	solo.Status = entities.AppointmentStatusConfirmed
	require.NoError(t, repo.Create(ctx, solo))

	t.Run("by mentor", func(t *testing.T) {
		appointments, err := repo.GetByMentor(ctx, mentor.ID)
		require.NoError(t, err)
		assert.Len(t, appointments, 2)
	})

	t.Run("by student", func(t *testing.T) {
		appointments, err := repo.GetByStudent(ctx, 21)
		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.Equal(t, solo.ID, appointments[0].ID)
	})

	t.Run("by project group", func(t *testing.T) {
		appointments, err := repo.GetByProjectGroup(ctx, groupID)
		require.NoError(t, err)
		require.Len(t, appointments, 1)
		require.NotNil(t, appointments[0].ProjectGroupID)
		assert.Equal(t, groupID, *appointments[0].ProjectGroupID)
	})

	t.Run("by status", func(t *testing.T) {
		appointments, err := repo.GetByStatus(ctx, entities.AppointmentStatusConfirmed)
		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.Equal(t, solo.ID, appointments[0].ID)
	})
}

func TestAppointmentRepository_Update(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	mentorRepo := NewMentorRepository(testDB.DB)
	repo := NewAppointmentRepository(testDB.DB)
	ctx := context.Background()

	mentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, mentorRepo.Create(ctx, mentor))

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appointment := testutil.CreateTestAppointment(mentor.ID, 20, start, time.Hour)
	require.NoError(t, repo.Create(ctx, appointment))

	t.Run("update persists mutable fields", func(t *testing.T) {
		meetingURL := "https://meet.mentorhub.dev/abc"
		appointment.Status = entities.AppointmentStatusConfirmed
		appointment.MeetingURL = &meetingURL

		require.NoError(t, repo.Update(ctx, appointment))

		fetched, err := repo.GetByID(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.AppointmentStatusConfirmed, fetched.Status)
		require.NotNil(t, fetched.MeetingURL)
		assert.Equal(t, meetingURL, *fetched.MeetingURL)
	})

	t.Run("status only update", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, appointment.ID, entities.AppointmentStatusCompleted))

		fetched, err := repo.GetByID(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.AppointmentStatusCompleted, fetched.Status)
	})

	t.Run("update of missing appointment errors", func(t *testing.T) {
		missing := testutil.CreateTestAppointment(mentor.ID, 20, start, time.Hour)
		missing.ID = 9999
		assert.Error(t, repo.Update(ctx, missing))
		assert.Error(t, repo.UpdateStatus(ctx, 9999, entities.AppointmentStatusCancelled))
		assert.Error(t, repo.Delete(ctx, 9999))
	})
}
