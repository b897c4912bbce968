package testhelpers

import (
	"context"
	"time"

	"mentorhub/domain/entities"
	"mentorhub/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockMentorRepository is a mock implementation of MentorRepository
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) Create(ctx context.Context, mentor *entities.Mentor) error {
	args := m.Called(ctx, mentor)
	return args.Error(0)
}

func (m *MockMentorRepository) GetByID(ctx context.Context, id int64) (*entities.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Mentor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetAll(ctx context.Context) ([]*entities.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByExpertise(ctx context.Context, area string) ([]*entities.Mentor, error) {
	args := m.Called(ctx, area)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetAvailable(ctx context.Context) ([]*entities.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Mentor), args.Error(1)
}

func (m *MockMentorRepository) Update(ctx context.Context, mentor *entities.Mentor) error {
	args := m.Called(ctx, mentor)
	return args.Error(0)
}

func (m *MockMentorRepository) UpdateStatus(ctx context.Context, id int64, status entities.MentorStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMentorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMentorRepository) LockForBooking(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByMentor(ctx context.Context, mentorID int64) ([]*entities.Appointment, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*entities.Appointment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByProjectGroup(ctx context.Context, groupID int64) ([]*entities.Appointment, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByStatus(ctx context.Context, status entities.AppointmentStatus) ([]*entities.Appointment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByMentorAndDay(ctx context.Context, mentorID int64, day time.Time) ([]*entities.Appointment, error) {
	args := m.Called(ctx, mentorID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetConflicting(ctx context.Context, mentorID int64, start, end time.Time) ([]*entities.Appointment, error) {
	args := m.Called(ctx, mentorID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id int64, status entities.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id int64) (*entities.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Deduct(ctx context.Context, walletID int64, points int64) (bool, error) {
	args := m.Called(ctx, walletID, points)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepository) Credit(ctx context.Context, walletID int64, points int64, countEarned bool) error {
	args := m.Called(ctx, walletID, points, countEarned)
	return args.Error(0)
}

func (m *MockWalletRepository) CreateTransaction(ctx context.Context, transaction *entities.WalletTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockWalletRepository) GetTransactionsByWallet(ctx context.Context, walletID int64) ([]*entities.WalletTransaction, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) GetTransactionsByType(ctx context.Context, walletID int64, transactionType entities.TransactionType) ([]*entities.WalletTransaction, error) {
	args := m.Called(ctx, walletID, transactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WalletTransaction), args.Error(1)
}

// RecordingPublisher captures published events for assertions
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(event events.Event) error {
	p.Events = append(p.Events, event)
	return nil
}

// EventsOfType returns the captured events matching the given type
func (p *RecordingPublisher) EventsOfType(eventType events.EventType) []events.Event {
	var matched []events.Event
	for _, event := range p.Events {
		if event.Type() == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
