package entities

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// IsTerminal returns true if no further transitions are allowed from this state
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled ||
		s == AppointmentStatusCompleted ||
		s == AppointmentStatusNoShow
}

// CountsAsConflict returns true if an appointment in this state blocks the
// mentor's calendar. Cancelled and no-show appointments free their slot.
func (s AppointmentStatus) CountsAsConflict() bool {
	return s != AppointmentStatusCancelled && s != AppointmentStatusNoShow
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Pending can be confirmed or cancelled; confirmed can be cancelled or
// completed; terminal states allow nothing.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCancelled || next == AppointmentStatusCompleted
	default:
		return false
	}
}

// String returns the string representation of the status
func (s AppointmentStatus) String() string {
	return string(s)
}

// Appointment represents a booked mentoring session
type Appointment struct {
	ID             int64             `db:"id" json:"id"`
	MentorID       int64             `db:"mentor_id" json:"mentor_id"`
	StudentID      int64             `db:"student_id" json:"student_id"`
	ProjectGroupID *int64            `db:"project_group_id" json:"project_group_id,omitempty"`
	Title          string            `db:"title" json:"title"`
	Description    string            `db:"description" json:"description"`
	StartTime      time.Time         `db:"start_time" json:"start_time"`
	EndTime        time.Time         `db:"end_time" json:"end_time"`
	Status         AppointmentStatus `db:"status" json:"status"`
	PointsRequired int64             `db:"points_required" json:"points_required"`
	PointsUsed     int64             `db:"points_used" json:"points_used"`
	MeetingURL     *string           `db:"meeting_url" json:"meeting_url,omitempty"`
	Notes          *string           `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// DurationHours returns the session length in fractional hours
func (a *Appointment) DurationHours() float64 {
	return a.EndTime.Sub(a.StartTime).Hours()
}

// Overlaps reports whether the appointment's half-open interval [start, end)
// intersects the given half-open interval.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}

// CanBeCancelledBy returns true if the user is a party to the appointment.
// Only the booking student or the mentor may cancel.
func (a *Appointment) CanBeCancelledBy(userID int64) bool {
	return userID == a.StudentID || userID == a.MentorID
}

// ValidateInterval checks the basic interval invariant
func (a *Appointment) ValidateInterval() error {
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return errors.New("appointment interval is not set")
	}
	if !a.StartTime.Before(a.EndTime) {
		return ErrInvalidInterval
	}
	return nil
}
