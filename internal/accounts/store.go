// Package accounts holds the current balance of every registered account
// plus the running issuance and burn totals, so the conservation law
// (sum of balances + total burned == total issued) is checkable at any time.
//
// The store carries no lock of its own: it is owned by the trade processor,
// which serializes every mutation behind its single critical section.
package accounts

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownAccount means the account id was never registered.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrDuplicateAccount means the account id is already registered.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInsufficientBalance means the sender cannot cover the gross amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Store maps account ids to balances. Balances never go negative and
// accounts are never deleted, only reset with the ledger.
type Store struct {
	balances map[string]decimal.Decimal
	issued   decimal.Decimal
	burned   decimal.Decimal
}

// NewStore returns an empty store with zero supply.
func NewStore() *Store {
	return &Store{balances: make(map[string]decimal.Decimal)}
}

// Exists reports whether the account id is registered.
func (s *Store) Exists(id string) bool {
	_, ok := s.balances[id]
	return ok
}

// Balance returns the current balance of an account.
func (s *Store) Balance(id string) (decimal.Decimal, error) {
	bal, ok := s.balances[id]
	if !ok {
		return decimal.Zero, ErrUnknownAccount
	}
	return bal, nil
}

// Create registers a new account with the given starting balance. The
// starting balance counts as newly issued supply.
func (s *Store) Create(id string, starting decimal.Decimal) error {
	if _, ok := s.balances[id]; ok {
		return ErrDuplicateAccount
	}
	s.balances[id] = starting
	s.issued = s.issued.Add(starting)
	return nil
}

// ApplyIssue mints new supply straight into an existing account, the
// airdrop path. Registration issuance goes through Create instead.
func (s *Store) ApplyIssue(id string, amount decimal.Decimal) error {
	bal, ok := s.balances[id]
	if !ok {
		return ErrUnknownAccount
	}
	s.balances[id] = bal.Add(amount)
	s.issued = s.issued.Add(amount)
	return nil
}

// ApplyTransfer debits the sender by gross and credits the receiver by
// gross minus burn; the burn leaves circulation for good. Either the whole
// transfer applies or nothing does.
func (s *Store) ApplyTransfer(sender, receiver string, gross, burn decimal.Decimal) error {
	senderBal, ok := s.balances[sender]
	if !ok {
		return ErrUnknownAccount
	}
	receiverBal, ok := s.balances[receiver]
	if !ok {
		return ErrUnknownAccount
	}
	if senderBal.Cmp(gross) < 0 {
		return ErrInsufficientBalance
	}
	s.balances[sender] = senderBal.Sub(gross)
	s.balances[receiver] = receiverBal.Add(gross.Sub(burn))
	s.burned = s.burned.Add(burn)
	return nil
}

// Snapshot returns a copy of all balances, safe to hand to readers.
func (s *Store) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.balances))
	for id, bal := range s.balances {
		out[id] = bal
	}
	return out
}

// TotalIssued is the total supply ever minted.
func (s *Store) TotalIssued() decimal.Decimal { return s.issued }

// TotalBurned is the total supply destroyed by burns.
func (s *Store) TotalBurned() decimal.Decimal { return s.burned }

// Circulating is issued minus burned, which must equal the sum of all
// balances at every observation point.
func (s *Store) Circulating() decimal.Decimal { return s.issued.Sub(s.burned) }
