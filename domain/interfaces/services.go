package interfaces

import (
	"context"
	"time"

	"mentorhub/domain/entities"
)

// WalletService defines the interface for the points ledger
type WalletService interface {
	// GetOrCreateWallet retrieves the user's wallet, creating an empty one on
	// first access
	GetOrCreateWallet(ctx context.Context, userID int64) (*entities.Wallet, error)

	// AddPoints credits points to the user's wallet with an earned entry
	AddPoints(ctx context.Context, userID int64, points int64, description string) (*entities.Wallet, error)

	// SpendPoints debits points outside the booking flow; fails with
	// entities.ErrInsufficientBalance when the balance does not cover it
	SpendPoints(ctx context.Context, userID int64, points int64, description string) (*entities.Wallet, error)

	// DeductForAppointment atomically authorizes and deducts the point cost
	// of a booking, appending a spent entry tagged with the appointment
	DeductForAppointment(ctx context.Context, userID int64, points int64, appointmentID int64) error

	// RefundForAppointment credits back the points of a cancelled booking,
	// appending a refunded entry tagged with the appointment
	RefundForAppointment(ctx context.Context, userID int64, points int64, appointmentID int64) error

	// GetTransactions returns the user's ledger, newest first
	GetTransactions(ctx context.Context, userID int64) ([]*entities.WalletTransaction, error)

	// GetTransactionsByType returns the user's ledger entries of one type
	GetTransactionsByType(ctx context.Context, userID int64, transactionType entities.TransactionType) ([]*entities.WalletTransaction, error)
}

// MentorService defines the interface for the mentor directory
type MentorService interface {
	// CreateMentor creates a new active mentor profile
	CreateMentor(ctx context.Context, userID int64, bio string, expertiseAreas []string, hourlyRate int64, maxSessionsPerDay int) (*entities.Mentor, error)

	// GetMentorByID retrieves a mentor by id, nil when absent
	GetMentorByID(ctx context.Context, mentorID int64) (*entities.Mentor, error)

	// GetMentorByUserID retrieves the mentor profile owned by a user
	GetMentorByUserID(ctx context.Context, userID int64) (*entities.Mentor, error)

	// GetAllMentors returns every mentor profile
	GetAllMentors(ctx context.Context) ([]*entities.Mentor, error)

	// GetMentorsByExpertise returns mentors listing an expertise area
	GetMentorsByExpertise(ctx context.Context, area string) ([]*entities.Mentor, error)

	// GetAvailableMentors returns all active mentors
	GetAvailableMentors(ctx context.Context) ([]*entities.Mentor, error)

	// UpdateMentorProfile updates the provided profile fields; nil means keep
	UpdateMentorProfile(ctx context.Context, mentorID int64, bio *string, expertiseAreas []string, hourlyRate *int64, maxSessionsPerDay *int) (*entities.Mentor, error)

	// UpdateMentorStatus sets the mentor's status
	UpdateMentorStatus(ctx context.Context, mentorID int64, status entities.MentorStatus) error

	// GetMentorSchedule returns the mentor's non-cancelled appointments on a day
	GetMentorSchedule(ctx context.Context, mentorID int64, day time.Time) ([]*entities.Appointment, error)

	// DeleteMentor removes a mentor profile
	DeleteMentor(ctx context.Context, mentorID int64) error
}

// AvailabilityService determines free/busy state for mentors
type AvailabilityService interface {
	// IsAvailable reports whether the mentor is active and free for the
	// half-open interval [start, end)
	IsAvailable(ctx context.Context, mentorID int64, start, end time.Time) (bool, error)

	// ListAvailableSlots generates the free slots of the given duration in
	// the mentor's working window on a day, in ascending start order
	ListAvailableSlots(ctx context.Context, mentorID int64, day time.Time, durationHours float64) ([]*entities.Slot, error)
}

// SchedulerService orchestrates the appointment lifecycle
type SchedulerService interface {
	// CreateAppointment books a pending session and deducts its point cost
	CreateAppointment(ctx context.Context, params CreateAppointmentParams) (*entities.Appointment, error)

	// ConfirmAppointment moves a pending appointment to confirmed; returns
	// false when the appointment is absent or in a terminal state
	ConfirmAppointment(ctx context.Context, id int64) (bool, error)

	// CancelAppointment cancels an appointment on behalf of a party and
	// refunds any points used; returns false when absent or already terminal
	CancelAppointment(ctx context.Context, id int64, requestedByUserID int64) (bool, error)

	// CompleteAppointment marks a confirmed appointment completed; returns
	// false when absent or the transition is not allowed
	CompleteAppointment(ctx context.Context, id int64) (bool, error)

	// GetAppointmentByID retrieves an appointment, nil when absent
	GetAppointmentByID(ctx context.Context, id int64) (*entities.Appointment, error)

	// GetAppointmentsByStudent returns a student's appointments
	GetAppointmentsByStudent(ctx context.Context, studentID int64) ([]*entities.Appointment, error)

	// GetAppointmentsByMentor returns a mentor's appointments
	GetAppointmentsByMentor(ctx context.Context, mentorID int64) ([]*entities.Appointment, error)

	// GetAppointmentsByProjectGroup returns a project group's appointments
	GetAppointmentsByProjectGroup(ctx context.Context, groupID int64) ([]*entities.Appointment, error)
}

// CreateAppointmentParams carries the inputs of a booking request
type CreateAppointmentParams struct {
	MentorID       int64
	StudentID      int64
	Title          string
	Description    string
	StartTime      time.Time
	EndTime        time.Time
	ProjectGroupID *int64
}
