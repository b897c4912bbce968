package interfaces

import (
	"context"
	"time"

	"mentorhub/domain/entities"
	"mentorhub/domain/events"
)

// MentorRepository defines the interface for mentor data access
type MentorRepository interface {
	// Create persists a new mentor profile and fills in its id
	Create(ctx context.Context, mentor *entities.Mentor) error

	// GetByID retrieves a mentor by id, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Mentor, error)

	// GetByUserID retrieves the mentor profile owned by a user, nil when absent
	GetByUserID(ctx context.Context, userID int64) (*entities.Mentor, error)

	// GetAll returns all mentor profiles
	GetAll(ctx context.Context) ([]*entities.Mentor, error)

	// GetByExpertise returns mentors listing the given expertise area
	GetByExpertise(ctx context.Context, area string) ([]*entities.Mentor, error)

	// GetAvailable returns all mentors with active status
	GetAvailable(ctx context.Context) ([]*entities.Mentor, error)

	// Update replaces the mutable profile fields of a mentor
	Update(ctx context.Context, mentor *entities.Mentor) error

	// UpdateStatus updates only the mentor's status
	UpdateStatus(ctx context.Context, id int64, status entities.MentorStatus) error

	// Delete removes a mentor profile
	Delete(ctx context.Context, id int64) error

	// LockForBooking takes a row lock on the mentor for the remainder of the
	// current transaction, serializing concurrent bookings per mentor
	LockForBooking(ctx context.Context, id int64) error
}

// AppointmentRepository defines the interface for appointment data access
type AppointmentRepository interface {
	// Create persists a new appointment and fills in its id
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by id, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Appointment, error)

	// GetByMentor returns all appointments where the mentor is the provider
	GetByMentor(ctx context.Context, mentorID int64) ([]*entities.Appointment, error)

	// GetByStudent returns all appointments booked by a student
	GetByStudent(ctx context.Context, studentID int64) ([]*entities.Appointment, error)

	// GetByProjectGroup returns all appointments attached to a project group
	GetByProjectGroup(ctx context.Context, groupID int64) ([]*entities.Appointment, error)

	// GetByStatus returns all appointments in the given state
	GetByStatus(ctx context.Context, status entities.AppointmentStatus) ([]*entities.Appointment, error)

	// GetByMentorAndDay returns a mentor's appointments starting within the
	// UTC day containing the given instant
	GetByMentorAndDay(ctx context.Context, mentorID int64, day time.Time) ([]*entities.Appointment, error)

	// GetConflicting returns the mentor's appointments whose [start, end)
	// interval overlaps the given one, excluding cancelled and no-show
	GetConflicting(ctx context.Context, mentorID int64, start, end time.Time) ([]*entities.Appointment, error)

	// Update replaces an appointment's mutable fields
	Update(ctx context.Context, appointment *entities.Appointment) error

	// UpdateStatus updates only the appointment's status
	UpdateStatus(ctx context.Context, id int64, status entities.AppointmentStatus) error

	// Delete removes an appointment record
	Delete(ctx context.Context, id int64) error
}

// WalletRepository defines the interface for wallet and ledger data access
type WalletRepository interface {
	// Create persists a new wallet and fills in its id
	Create(ctx context.Context, wallet *entities.Wallet) error

	// GetByUserID retrieves the wallet owned by a user, nil when absent
	GetByUserID(ctx context.Context, userID int64) (*entities.Wallet, error)

	// GetByID retrieves a wallet by id, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Wallet, error)

	// Deduct atomically subtracts points from the balance and adds them to
	// total_spent, but only when the balance covers the amount. Returns
	// false without modifying anything when it does not.
	Deduct(ctx context.Context, walletID int64, points int64) (bool, error)

	// Credit atomically adds points to the balance. When countEarned is set
	// the amount is also added to total_earned (top-ups and bonuses, not
	// refunds of points already counted).
	Credit(ctx context.Context, walletID int64, points int64, countEarned bool) error

	// CreateTransaction appends a ledger entry
	CreateTransaction(ctx context.Context, transaction *entities.WalletTransaction) error

	// GetTransactionsByWallet returns the ledger for a wallet, newest first
	GetTransactionsByWallet(ctx context.Context, walletID int64) ([]*entities.WalletTransaction, error)

	// GetTransactionsByType returns a wallet's ledger entries of one type
	GetTransactionsByType(ctx context.Context, walletID int64, transactionType entities.TransactionType) ([]*entities.WalletTransaction, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}
