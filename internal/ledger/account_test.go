package ledger

import (
	"fmt"
	"math"
	"testing"
)

func mustAccount(t *testing.T, id string, balance float64) *Account {
	t.Helper()
	a, err := NewAccount(id, balance)
	if err != nil {
		t.Fatalf("NewAccount(%q, %v) failed: %v", id, balance, err)
	}
	return a
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s violation, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Errorf("expected kind %s, got %s (%v)", want, got, err)
	}
}

func TestNewAccount(t *testing.T) {
	tests := []struct {
		name           string
		initialBalance float64
		wantErr        bool
	}{
		{"zero balance", 0, false},
		{"positive balance", 250.75, false},
		{"negative balance", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAccount("acc-1", tt.initialBalance)
			if tt.wantErr {
				assertKind(t, err, KindContractViolation)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.ID() != "acc-1" {
				t.Errorf("expected id acc-1, got %q", a.ID())
			}
			if a.Balance() != tt.initialBalance {
				t.Errorf("expected balance %v, got %v", tt.initialBalance, a.Balance())
			}
		})
	}
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name        string
		start       float64
		amount      float64
		wantBalance float64
		wantKind    Kind
	}{
		{"deposit into empty account", 0, 1000, 1000, ""},
		{"deposit on top of balance", 100, 50.5, 150.5, ""},
		{"zero amount", 100, 0, 100, KindInvalidAmount},
		{"negative amount", 0, -50, 0, KindInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustAccount(t, "acc-1", tt.start)
			err := a.Deposit(tt.amount)
			if tt.wantKind != "" {
				assertKind(t, err, tt.wantKind)
				if a.Balance() != tt.start {
					t.Errorf("balance changed on failed deposit: %v -> %v", tt.start, a.Balance())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Balance() != tt.wantBalance {
				t.Errorf("expected balance %v, got %v", tt.wantBalance, a.Balance())
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name        string
		start       float64
		amount      float64
		wantBalance float64
		wantKind    Kind
	}{
		{"partial withdrawal", 1000, 100, 900, ""},
		{"full withdrawal", 100, 100, 0, ""},
		{"zero amount", 100, 0, 100, KindInvalidAmount},
		{"negative amount", 100, -10, 100, KindInvalidAmount},
		{"amount exceeds balance", 100, 150, 100, KindInsufficientFunds},
		{"withdrawal from empty account", 0, 1, 0, KindInsufficientFunds},
		// Amount positivity is checked before sufficiency.
		{"negative amount on empty account", 0, -1, 0, KindInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustAccount(t, "acc-1", tt.start)
			err := a.Withdraw(tt.amount)
			if tt.wantKind != "" {
				assertKind(t, err, tt.wantKind)
				if a.Balance() != tt.start {
					t.Errorf("balance changed on failed withdrawal: %v -> %v", tt.start, a.Balance())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Balance() != tt.wantBalance {
				t.Errorf("expected balance %v, got %v", tt.wantBalance, a.Balance())
			}
		})
	}
}

func TestTransferTo(t *testing.T) {
	tests := []struct {
		name      string
		fromStart float64
		toStart   float64
		amount    float64
		wantKind  Kind
	}{
		{"transfer within balance", 1000, 500, 200, ""},
		{"transfer full balance", 300, 0, 300, ""},
		{"zero amount", 100, 100, 0, KindInvalidAmount},
		{"negative amount", 100, 100, -20, KindInvalidAmount},
		{"amount exceeds balance", 100, 0, 150, KindInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := mustAccount(t, "from", tt.fromStart)
			to := mustAccount(t, "to", tt.toStart)
			total := from.Balance() + to.Balance()

			err := from.TransferTo(to, tt.amount)
			if tt.wantKind != "" {
				assertKind(t, err, tt.wantKind)
				if from.Balance() != tt.fromStart || to.Balance() != tt.toStart {
					t.Errorf("balances changed on failed transfer: from %v, to %v",
						from.Balance(), to.Balance())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from.Balance() != tt.fromStart-tt.amount {
				t.Errorf("expected source balance %v, got %v", tt.fromStart-tt.amount, from.Balance())
			}
			if to.Balance() != tt.toStart+tt.amount {
				t.Errorf("expected destination balance %v, got %v", tt.toStart+tt.amount, to.Balance())
			}
			if got := from.Balance() + to.Balance(); math.Abs(got-total) > balanceTolerance {
				t.Errorf("transfer did not conserve total: %v -> %v", total, got)
			}
		})
	}
}

func TestTransferToSelf(t *testing.T) {
	// The same-account check runs before the amount checks, so every amount,
	// including zero and negative ones, reports the same-account violation.
	for _, amount := range []float64{30, 0, -5, 1e9} {
		t.Run(fmt.Sprintf("amount %v", amount), func(t *testing.T) {
			a := mustAccount(t, "x", 100)
			assertKind(t, a.TransferTo(a, amount), KindSameAccountTransfer)
			if a.Balance() != 100 {
				t.Errorf("balance changed on self-transfer: %v", a.Balance())
			}
		})
	}
}

func TestTransferToDistinctEntityWithSameID(t *testing.T) {
	// Identity, not ID equality: two separately constructed accounts that
	// happen to share an ID are still different entities.
	a := mustAccount(t, "dup", 100)
	b := mustAccount(t, "dup", 0)
	if err := a.TransferTo(b, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Balance() != 60 || b.Balance() != 40 {
		t.Errorf("expected 60/40, got %v/%v", a.Balance(), b.Balance())
	}
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	for _, amount := range []float64{1, 0.1, 123.45, 0.3} {
		a := mustAccount(t, "acc-1", 500)
		if err := a.Deposit(amount); err != nil {
			t.Fatalf("deposit %v failed: %v", amount, err)
		}
		if err := a.Withdraw(amount); err != nil {
			t.Fatalf("withdraw %v failed: %v", amount, err)
		}
		if math.Abs(a.Balance()-500) > balanceTolerance {
			t.Errorf("round trip of %v drifted balance to %v", amount, a.Balance())
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"violation error", violation(KindInsufficientFunds, "no funds"), KindInsufficientFunds},
		{"wrapped violation", fmt.Errorf("transfer: %w", violation(KindInvalidAmount, "bad amount")), KindInvalidAmount},
		{"plain error", fmt.Errorf("boom"), KindContractViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
