package events

import "time"

// Event types
const (
	AccountDeposited   = "account.deposited"
	AccountWithdrawn   = "account.withdrawn"
	AccountTransferred = "account.transferred"
	StoreReset         = "store.reset"
)

// LedgerEventsStream is the stream all ledger events are appended to.
const LedgerEventsStream = "ledger.events"

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountDepositedEvent struct {
	AccountID string  `json:"accountId"`
	Amount    float64 `json:"amount"`
	Balance   float64 `json:"balance"`
}

type AccountWithdrawnEvent struct {
	AccountID string  `json:"accountId"`
	Amount    float64 `json:"amount"`
	Balance   float64 `json:"balance"`
}

type AccountTransferredEvent struct {
	FromID      string  `json:"fromId"`
	ToID        string  `json:"toId"`
	Amount      float64 `json:"amount"`
	FromBalance float64 `json:"fromBalance"`
	ToBalance   float64 `json:"toBalance"`
}

type StoreResetEvent struct {
	Accounts int `json:"accounts"`
}
