// Package ledger is an in-memory balance ledger implementing the payment
// oracle. Transfers are all-or-nothing: a rejected transfer leaves both
// balances untouched.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// Ledger tracks per-principal balances.
type Ledger struct {
	mu       sync.Mutex
	balances map[complaint.Principal]int64
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{balances: map[complaint.Principal]int64{}}
}

// Credit adds funds to a principal's balance.
func (l *Ledger) Credit(p complaint.Principal, amount int64) error {
	if amount < 0 {
		return errors.New("credit amount must be non-negative")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[p] += amount
	return nil
}

// Balance returns the principal's current balance.
func (l *Ledger) Balance(p complaint.Principal) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[p]
}

// Transfer moves amount from one principal to another, rejecting on
// insufficient funds. Implements oracle.Payer.
func (l *Ledger) Transfer(amount int64, from, to complaint.Principal) error {
	if amount < 0 {
		return errors.New("transfer amount must be non-negative")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from] < amount {
		return fmt.Errorf("insufficient funds: %s has %d, needs %d", from, l.balances[from], amount)
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}
