package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalBus_FlushDeliversToSubscribers(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan BalanceChangeEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		defer wg.Done()
		balanceEvent, ok := event.(BalanceChangeEvent)
		require.True(t, ok, "expected BalanceChangeEvent, got %T", event)
		received <- balanceEvent
	})

	testEvent := BalanceChangeEvent{
		UserID:       20,
		WalletID:     5,
		OldBalance:   200,
		NewBalance:   50,
		ChangeAmount: -150,
	}

	require.NoError(t, transactionalBus.Publish(testEvent))
	transactionalBus.Flush(context.Background())
	wg.Wait()

	select {
	case got := <-received:
		assert.Equal(t, testEvent, got)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not received within timeout")
	}
}

func TestTransactionalBus_PublishDoesNotEmitBeforeFlush(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan Event, 1)
	mainBus.Subscribe(EventTypeWalletCreated, func(ctx context.Context, event Event) {
		received <- event
	})

	require.NoError(t, transactionalBus.Publish(WalletCreatedEvent{WalletID: 5, UserID: 20}))

	select {
	case <-received:
		t.Fatal("event must not reach subscribers before flush")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan Event, 1)
	mainBus.Subscribe(EventTypeWalletCreated, func(ctx context.Context, event Event) {
		received <- event
	})

	require.NoError(t, transactionalBus.Publish(WalletCreatedEvent{WalletID: 5, UserID: 20}))
	transactionalBus.Discard()
	transactionalBus.Flush(context.Background())

	select {
	case <-received:
		t.Fatal("discarded event must not be delivered")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_HandlerPanicDoesNotCrash(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		panic("handler exploded")
	})
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), BalanceChangeEvent{UserID: 20})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run")
	}
}
