// Package ledger holds the account model and the in-memory store. Every
// balance mutation is guarded by explicit preconditions, verified against a
// postcondition comparing captured pre-state to post-state, and followed by
// an invariant re-check. The postcondition and invariant checks should never
// fire when the preconditions hold; they are the safety net against
// arithmetic bugs in the mutation itself.
package ledger

import "math"

// balanceTolerance bounds the floating-point error accepted when comparing
// a post-mutation balance against its expected value.
const balanceTolerance = 1e-9

// Account is a single ledger entry: an immutable identifier and a balance
// that is only reachable through the contract-checked operations.
//
// Invariant: balance >= 0 at all observable points.
type Account struct {
	id      string
	balance float64
}

// NewAccount constructs an account with the given starting balance.
// A negative starting balance violates the construction precondition.
func NewAccount(id string, initialBalance float64) (*Account, error) {
	if initialBalance < 0 {
		return nil, violation(KindContractViolation, "initial balance must be >= 0, got %v", initialBalance)
	}
	a := &Account{id: id, balance: initialBalance}
	if err := a.checkInvariant(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Account) ID() string {
	return a.id
}

func (a *Account) Balance() float64 {
	return a.balance
}

// Deposit adds amount to the balance.
//
// Precondition: amount > 0.
// Postcondition: balance == old balance + amount.
func (a *Account) Deposit(amount float64) error {
	if amount <= 0 {
		return violation(KindInvalidAmount, "deposit amount must be positive, got %v", amount)
	}
	old := a.balance
	a.balance += amount
	if !closeTo(a.balance, old+amount) {
		return violation(KindContractViolation, "postcondition breached: balance must increase by exactly the deposit amount")
	}
	return a.checkInvariant()
}

// Withdraw removes amount from the balance.
//
// Preconditions: amount > 0, then balance >= amount. The order matters for
// failure classification: a non-positive amount reports invalid_amount even
// when the balance is zero.
// Postcondition: balance == old balance - amount.
func (a *Account) Withdraw(amount float64) error {
	if amount <= 0 {
		return violation(KindInvalidAmount, "withdrawal amount must be positive, got %v", amount)
	}
	if a.balance < amount {
		return violation(KindInsufficientFunds, "insufficient funds: balance %v, requested %v", a.balance, amount)
	}
	old := a.balance
	a.balance -= amount
	if !closeTo(a.balance, old-amount) {
		return violation(KindContractViolation, "postcondition breached: balance must decrease by exactly the withdrawal amount")
	}
	return a.checkInvariant()
}

// TransferTo moves amount from a to other as a single logical unit: when any
// precondition fails, neither balance changes.
//
// Preconditions, checked in this order: other is a different entity (pointer
// identity, so a zero-amount self-transfer still reports invalid_transfer),
// amount > 0, balance >= amount.
// Postconditions: source decreases and destination increases by amount.
func (a *Account) TransferTo(other *Account, amount float64) error {
	if other == a {
		return violation(KindSameAccountTransfer, "cannot transfer to the same account")
	}
	if amount <= 0 {
		return violation(KindInvalidAmount, "transfer amount must be positive, got %v", amount)
	}
	if a.balance < amount {
		return violation(KindInsufficientFunds, "insufficient funds: balance %v, requested %v", a.balance, amount)
	}
	oldSrc, oldDst := a.balance, other.balance
	a.balance -= amount
	other.balance += amount
	if !closeTo(a.balance, oldSrc-amount) {
		return violation(KindContractViolation, "postcondition breached: source balance must decrease by the transfer amount")
	}
	if !closeTo(other.balance, oldDst+amount) {
		return violation(KindContractViolation, "postcondition breached: destination balance must increase by the transfer amount")
	}
	if err := a.checkInvariant(); err != nil {
		return err
	}
	return other.checkInvariant()
}

func (a *Account) checkInvariant() error {
	if a.balance < 0 {
		return violation(KindContractViolation, "invariant breached: account %q balance %v is negative", a.id, a.balance)
	}
	return nil
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= balanceTolerance
}
