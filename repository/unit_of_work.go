package repository

import (
	"context"
	"fmt"

	"mentorhub/application"
	"mentorhub/database"
	"mentorhub/domain/events"
	"mentorhub/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	mentorRepo       interfaces.MentorRepository
	appointmentRepo  interfaces.AppointmentRepository
	walletRepo       interfaces.WalletRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.mentorRepo = NewMentorRepositoryTx(tx)
	u.appointmentRepo = NewAppointmentRepositoryTx(tx)
	u.walletRepo = NewWalletRepositoryTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// MentorRepository returns the mentor repository for this unit of work
func (u *unitOfWork) MentorRepository() interfaces.MentorRepository {
	if u.mentorRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.mentorRepo
}

// AppointmentRepository returns the appointment repository for this unit of work
func (u *unitOfWork) AppointmentRepository() interfaces.AppointmentRepository {
	if u.appointmentRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.appointmentRepo
}

// WalletRepository returns the wallet repository for this unit of work
func (u *unitOfWork) WalletRepository() interfaces.WalletRepository {
	if u.walletRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.walletRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
