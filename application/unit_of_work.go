package application

import (
	"context"

	"mentorhub/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// All repositories returned by one unit of work share a single database
// transaction, so a booking's state change and its ledger effect commit or
// roll back together.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	MentorRepository() interfaces.MentorRepository
	AppointmentRepository() interfaces.AppointmentRepository
	WalletRepository() interfaces.WalletRepository

	// EventBus returns the transactional event publisher bound to this unit
	// of work; events publish only after a successful commit
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
