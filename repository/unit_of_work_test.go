package repository

import (
	"context"
	"testing"
	"time"

	"mentorhub/domain/events"
	"mentorhub/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	eventBus := events.NewBus()
	factory := NewUnitOfWorkFactory(testDB.DB, eventBus)

	received := make(chan events.Event, 1)
	eventBus.Subscribe(events.EventTypeWalletCreated, func(ctx context.Context, event events.Event) {
		received <- event
	})

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	wallet := testutil.CreateTestWallet(20, 300)
	require.NoError(t, uow.WalletRepository().Create(ctx, wallet))
	require.NoError(t, uow.EventBus().Publish(events.WalletCreatedEvent{WalletID: wallet.ID, UserID: 20}))

	require.NoError(t, uow.Commit())

	// Visible outside the transaction after commit
	fetched, err := NewWalletRepository(testDB.DB).GetByUserID(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, int64(300), fetched.Balance)

	select {
	case event := <-received:
		created, ok := event.(events.WalletCreatedEvent)
		require.True(t, ok, "expected WalletCreatedEvent, got %T", event)
		assert.Equal(t, wallet.ID, created.WalletID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not flushed after commit")
	}
}

func TestUnitOfWork_RollbackDiscardsWorkAndEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	eventBus := events.NewBus()
	factory := NewUnitOfWorkFactory(testDB.DB, eventBus)

	received := make(chan events.Event, 1)
	eventBus.Subscribe(events.EventTypeWalletCreated, func(ctx context.Context, event events.Event) {
		received <- event
	})

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	wallet := testutil.CreateTestWallet(20, 300)
	require.NoError(t, uow.WalletRepository().Create(ctx, wallet))
	require.NoError(t, uow.EventBus().Publish(events.WalletCreatedEvent{WalletID: wallet.ID, UserID: 20}))

	require.NoError(t, uow.Rollback())

	fetched, err := NewWalletRepository(testDB.DB).GetByUserID(ctx, 20)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	select {
	case <-received:
		t.Fatal("events must not be delivered after rollback")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnitOfWork_Lifecycle(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())

	t.Run("repositories panic before begin", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.MentorRepository() })
		assert.Panics(t, func() { uow.AppointmentRepository() })
		assert.Panics(t, func() { uow.WalletRepository() })
	})

	t.Run("double begin is rejected", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer func() { _ = uow.Rollback() }()

		assert.Error(t, uow.Begin(ctx))
	})

	t.Run("commit without begin errors", func(t *testing.T) {
		uow := factory.Create()
		assert.Error(t, uow.Commit())
	})

	t.Run("rollback without begin is a no-op", func(t *testing.T) {
		uow := factory.Create()
		assert.NoError(t, uow.Rollback())
	})

	t.Run("rollback after commit is a no-op", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback())
	})
}
