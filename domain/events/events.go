package events

import (
	"time"

	"mentorhub/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange           EventType = "balance_change"
	EventTypeWalletCreated           EventType = "wallet_created"
	EventTypeAppointmentCreated      EventType = "appointment_created"
	EventTypeAppointmentStatusChange EventType = "appointment_status_change"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a wallet balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	WalletID        int64
	OldBalance      int64
	NewBalance      int64
	ChangeAmount    int64
	TransactionType entities.TransactionType
	AppointmentID   *int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// WalletCreatedEvent represents the lazy creation of a user's wallet
type WalletCreatedEvent struct {
	WalletID int64
	UserID   int64
}

func (e WalletCreatedEvent) Type() EventType {
	return EventTypeWalletCreated
}

// AppointmentCreatedEvent represents a freshly booked appointment
type AppointmentCreatedEvent struct {
	AppointmentID  int64
	MentorID       int64
	StudentID      int64
	StartTime      time.Time
	EndTime        time.Time
	PointsRequired int64
}

func (e AppointmentCreatedEvent) Type() EventType {
	return EventTypeAppointmentCreated
}

// AppointmentStatusChangeEvent represents an appointment state transition
type AppointmentStatusChangeEvent struct {
	AppointmentID int64
	MentorID      int64
	StudentID     int64
	OldStatus     entities.AppointmentStatus
	NewStatus     entities.AppointmentStatus
}

func (e AppointmentStatusChangeEvent) Type() EventType {
	return EventTypeAppointmentStatusChange
}
