package ledger

import "sync"

// Snapshot is a point-in-time copy of an account's externally visible state.
// Store operations return snapshots rather than internal pointers so callers
// can never mutate a balance outside the contract-checked operations.
type Snapshot struct {
	ID      string
	Balance float64
}

// Store is the process-wide account index: account ID -> *Account.
// A single mutex serialises every read-modify-write, so each operation,
// including the two-account transfer, is atomic with respect to the balance
// invariant even when the HTTP host handles requests concurrently.
//
// Accounts come into existence the first time any operation names them
// (get-or-create) and live until Reset destroys them. Construct stores
// explicitly with NewStore; there is no package-level instance.
type Store struct {
	mu    sync.Mutex
	accts map[string]*Account
}

func NewStore() *Store {
	return &Store{accts: make(map[string]*Account)}
}

// getOrCreate must be called with s.mu held. A fresh account starts at zero,
// which trivially satisfies the balance invariant.
func (s *Store) getOrCreate(id string) *Account {
	if a, ok := s.accts[id]; ok {
		return a
	}
	a := &Account{id: id}
	s.accts[id] = a
	return a
}

// Deposit credits amount to the account, creating it if absent.
func (s *Store) Deposit(id string, amount float64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.getOrCreate(id)
	if err := a.Deposit(amount); err != nil {
		return Snapshot{}, err
	}
	return snapshot(a), nil
}

// Withdraw debits amount from the account, creating it if absent (a
// withdrawal from a fresh account fails on the sufficiency precondition).
func (s *Store) Withdraw(id string, amount float64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.getOrCreate(id)
	if err := a.Withdraw(amount); err != nil {
		return Snapshot{}, err
	}
	return snapshot(a), nil
}

// Transfer moves amount between the two named accounts inside one critical
// section. Equal IDs resolve to the same entity, which the transfer
// precondition rejects.
func (s *Store) Transfer(fromID, toID string, amount float64) (Snapshot, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.getOrCreate(fromID)
	to := s.getOrCreate(toID)
	if err := from.TransferTo(to, amount); err != nil {
		return Snapshot{}, Snapshot{}, err
	}
	return snapshot(from), snapshot(to), nil
}

// Balance reads the current balance, creating the account if absent.
// Never fails.
func (s *Store) Balance(id string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.getOrCreate(id))
}

// Reset unconditionally destroys all accounts.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accts = make(map[string]*Account)
}

// Len reports the number of accounts currently in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accts)
}

func snapshot(a *Account) Snapshot {
	return Snapshot{ID: a.id, Balance: a.balance}
}
