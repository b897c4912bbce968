package api

import (
	"context"

	"mentorhub/application"
)

// withUnitOfWork runs fn inside a fresh transaction. The deferred rollback is
// a no-op after a successful commit.
func withUnitOfWork(ctx context.Context, factory application.UnitOfWorkFactory, fn func(uow application.UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit()
}
