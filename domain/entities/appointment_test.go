package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to confirmed", AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{"pending to cancelled", AppointmentStatusPending, AppointmentStatusCancelled, true},
		{"pending to completed", AppointmentStatusPending, AppointmentStatusCompleted, false},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed to completed", AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{"confirmed to pending", AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"no show is terminal", AppointmentStatusNoShow, AppointmentStatusConfirmed, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusNoShow.IsTerminal())
}

func TestAppointmentStatus_CountsAsConflict(t *testing.T) {
	t.Parallel()

	assert.True(t, AppointmentStatusPending.CountsAsConflict())
	assert.True(t, AppointmentStatusConfirmed.CountsAsConflict())
	assert.True(t, AppointmentStatusCompleted.CountsAsConflict())
	assert.False(t, AppointmentStatusCancelled.CountsAsConflict())
	assert.False(t, AppointmentStatusNoShow.CountsAsConflict())
}

func TestAppointment_Overlaps(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appointment := &Appointment{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
	}

	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical interval", base, base.Add(time.Hour), true},
		{"contained interval", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"straddles start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"straddles end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"back to back before", base.Add(-time.Hour), base, false},
		{"back to back after", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"fully before", base.Add(-3 * time.Hour), base.Add(-2 * time.Hour), false},
		{"fully after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.overlaps, appointment.Overlaps(tc.start, tc.end))
		})
	}
}

func TestAppointment_CanBeCancelledBy(t *testing.T) {
	t.Parallel()

	appointment := &Appointment{MentorID: 7, StudentID: 11}

	assert.True(t, appointment.CanBeCancelledBy(7))
	assert.True(t, appointment.CanBeCancelledBy(11))
	assert.False(t, appointment.CanBeCancelledBy(42))
}

func TestAppointment_ValidateInterval(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	valid := &Appointment{StartTime: base, EndTime: base.Add(time.Hour)}
	assert.NoError(t, valid.ValidateInterval())

	inverted := &Appointment{StartTime: base.Add(time.Hour), EndTime: base}
	assert.ErrorIs(t, inverted.ValidateInterval(), ErrInvalidInterval)

	zeroLength := &Appointment{StartTime: base, EndTime: base}
	assert.ErrorIs(t, zeroLength.ValidateInterval(), ErrInvalidInterval)

	unset := &Appointment{}
	assert.Error(t, unset.ValidateInterval())
}

func TestAppointment_DurationHours(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appointment := &Appointment{StartTime: base, EndTime: base.Add(90 * time.Minute)}

	assert.Equal(t, 1.5, appointment.DurationHours())
}
