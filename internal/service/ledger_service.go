// Package service wires the contract-checked account store to the event
// publisher. Each successful mutation is followed by an event emission;
// a failed emission is logged and never fails the request.
package service

import (
	"context"
	"log"

	"github.com/contractbank/ledger-service/internal/events"
	"github.com/contractbank/ledger-service/internal/ledger"
)

type LedgerService struct {
	store     *ledger.Store
	publisher events.Publisher
}

func NewLedgerService(store *ledger.Store, publisher events.Publisher) *LedgerService {
	return &LedgerService{store: store, publisher: publisher}
}

func (s *LedgerService) Deposit(id string, amount float64) (ledger.Snapshot, error) {
	snap, err := s.store.Deposit(id, amount)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	s.publish(events.AccountDeposited, events.AccountDepositedEvent{
		AccountID: snap.ID,
		Amount:    amount,
		Balance:   snap.Balance,
	})
	return snap, nil
}

func (s *LedgerService) Withdraw(id string, amount float64) (ledger.Snapshot, error) {
	snap, err := s.store.Withdraw(id, amount)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	s.publish(events.AccountWithdrawn, events.AccountWithdrawnEvent{
		AccountID: snap.ID,
		Amount:    amount,
		Balance:   snap.Balance,
	})
	return snap, nil
}

func (s *LedgerService) Transfer(fromID, toID string, amount float64) (ledger.Snapshot, ledger.Snapshot, error) {
	from, to, err := s.store.Transfer(fromID, toID, amount)
	if err != nil {
		return ledger.Snapshot{}, ledger.Snapshot{}, err
	}
	s.publish(events.AccountTransferred, events.AccountTransferredEvent{
		FromID:      from.ID,
		ToID:        to.ID,
		Amount:      amount,
		FromBalance: from.Balance,
		ToBalance:   to.Balance,
	})
	return from, to, nil
}

// Balance reads the account's current balance, creating it if absent.
func (s *LedgerService) Balance(id string) ledger.Snapshot {
	return s.store.Balance(id)
}

// Reset destroys all accounts.
func (s *LedgerService) Reset() {
	cleared := s.store.Len()
	s.store.Reset()
	s.publish(events.StoreReset, events.StoreResetEvent{Accounts: cleared})
}

func (s *LedgerService) publish(eventType string, data any) {
	if err := s.publisher.Publish(context.Background(), events.LedgerEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
